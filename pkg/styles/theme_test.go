package styles

import "testing"

func TestAdaptiveColorsHaveBothVariants(t *testing.T) {
	colors := map[string]struct{ Light, Dark string }{
		"ColorError":   {ColorError.Light, ColorError.Dark},
		"ColorWarning": {ColorWarning.Light, ColorWarning.Dark},
		"ColorSuccess": {ColorSuccess.Light, ColorSuccess.Dark},
		"ColorInfo":    {ColorInfo.Light, ColorInfo.Dark},
		"ColorPurple":  {ColorPurple.Light, ColorPurple.Dark},
		"ColorYellow":  {ColorYellow.Light, ColorYellow.Dark},
		"ColorComment": {ColorComment.Light, ColorComment.Dark},
	}

	for name, c := range colors {
		if c.Light == "" || c.Dark == "" {
			t.Errorf("%s is missing a Light or Dark variant", name)
		}
		if c.Light == c.Dark {
			t.Errorf("%s has identical Light and Dark variants: %s", name, c.Light)
		}
	}
}

func TestStylesRenderNonEmpty(t *testing.T) {
	for _, tt := range []struct {
		name  string
		style interface{ Render(...string) string }
	}{
		{"Error", Error},
		{"Warning", Warning},
		{"Success", Success},
		{"Info", Info},
		{"FilePath", FilePath},
		{"Command", Command},
		{"Deleted", Deleted},
		{"Prompt", Prompt},
		{"Verbose", Verbose},
		{"Header", Header},
	} {
		if got := tt.style.Render("test"); len(got) < len("test") {
			t.Errorf("style %s rendered shorter than input: %q", tt.name, got)
		}
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName("error"); !ok {
		t.Error("expected \"error\" to resolve to a known style")
	}
	if _, ok := ByName("nonexistent-tag"); ok {
		t.Error("expected unknown tag to report ok=false")
	}
}
