package deployer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jlaffaye/ftp"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/logger"
	"github.com/r3c/creep/pkg/pathutil"
)

var ftpLog = logger.New("deployer:ftp")

// ftpTolerated is the set of FTP reply codes the original tool (and this
// port) treats as non-fatal: 550 ("already exists" on MKD, "no such file" on
// DELE/RETR), 553 (also "no such file or directory" on some servers).
var ftpTolerated = map[int]bool{550: true, 553: true}

// FTP is the FTP/FTPS deployer.
type FTP struct {
	addr     string
	user     string
	pass     string
	root     string
	explicit bool
	implicit bool
}

// NewFTP builds an FTP deployer from a connection URL of the form
// "ftp[s]://[user[:pass]@]host[:port]/path", plus an "explicit-tls" option
// to force explicit FTPS negotiation over an "ftp://" URL.
func NewFTP(u *url.URL, options map[string]string) *FTP {
	host := u.Host
	if !strings.Contains(host, ":") {
		host += ":21"
	}

	f := &FTP{addr: host, root: u.Path}
	if u.User != nil {
		f.user = u.User.Username()
		f.pass, _ = u.User.Password()
	}
	if u.Scheme == "ftps" {
		f.implicit = true
	}
	if options["explicit-tls"] == "true" {
		f.explicit = true
	}
	return f
}

func (f *FTP) connect() (*ftp.ServerConn, error) {
	var opts []ftp.DialOption
	if f.implicit {
		opts = append(opts, ftp.DialWithTLS(&tls.Config{ServerName: strings.Split(f.addr, ":")[0]}))
	} else if f.explicit {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: strings.Split(f.addr, ":")[0]}))
	}

	conn, err := ftp.Dial(f.addr, opts...)
	if err != nil {
		return nil, err
	}

	user := f.user
	if user == "" {
		user = "anonymous"
	}
	if err := conn.Login(user, f.pass); err != nil {
		conn.Quit()
		return nil, err
	}
	return conn, nil
}

func ftpCode(err error) (int, bool) {
	if tpErr, ok := err.(*textproto.Error); ok {
		return tpErr.Code, true
	}
	return 0, false
}

func (f *FTP) path(relativePath string) string {
	return pathutil.Join(f.root, relativePath)
}

// Read retrieves relativePath from the FTP server.
func (f *FTP) Read(_ context.Context, relativePath string) ([]byte, ReadStatus, error) {
	conn, err := f.connect()
	if err != nil {
		return nil, StatusUnreachable, err
	}
	defer conn.Quit()

	resp, err := conn.Retr(f.path(relativePath))
	if err != nil {
		if code, ok := ftpCode(err); ok && ftpTolerated[code] {
			return nil, StatusEmpty, nil
		}
		return nil, StatusUnreachable, err
	}
	defer resp.Close()

	data := make([]byte, 0, 4096)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			break
		}
	}
	return data, StatusFound, nil
}

// Send processes actions in the order given, without regrouping them by
// directory: before the first ADD into a parent directory it creates that
// directory (tolerating "already exists"), then it uploads every ADD and
// deletes every DEL (tolerating "missing").
func (f *FTP) Send(_ context.Context, stagingDir string, actions []action.Action) error {
	conn, err := f.connect()
	if err != nil {
		return err
	}
	defer conn.Quit()

	madeDirs := map[string]bool{}
	for _, a := range actions {
		dir := pathutil.Join(f.root, pathToParent(a.Path))
		if a.Kind == action.Add && !madeDirs[dir] {
			if err := f.mkdirAll(conn, dir); err != nil {
				return err
			}
			madeDirs[dir] = true
		}

		switch a.Kind {
		case action.Add:
			src := filepath.Join(stagingDir, filepath.FromSlash(a.Path))
			file, err := os.Open(src)
			if err != nil {
				return err
			}
			err = conn.Stor(f.path(a.Path), file)
			file.Close()
			if err != nil {
				return fmt.Errorf("ftp: uploading %q: %w", a.Path, err)
			}
		case action.Del:
			if err := conn.Delete(f.path(a.Path)); err != nil {
				if code, ok := ftpCode(err); !ok || !ftpTolerated[code] {
					return fmt.Errorf("ftp: deleting %q: %w", a.Path, err)
				}
				ftpLog.Debugf("ignoring missing remote file on delete: %s", a.Path)
			}
		}
	}
	return nil
}

func (f *FTP) mkdirAll(conn *ftp.ServerConn, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}
	segments := strings.Split(strings.Trim(dir, "/"), "/")
	cur := ""
	for _, seg := range segments {
		cur = cur + "/" + seg
		if err := conn.MakeDir(cur); err != nil {
			if code, ok := ftpCode(err); !ok || !ftpTolerated[code] {
				return fmt.Errorf("ftp: creating directory %q: %w", cur, err)
			}
		}
	}
	return nil
}

func pathToParent(p string) string {
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(p)))
	if dir == "." {
		return ""
	}
	return dir
}
