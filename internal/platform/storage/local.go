// Package storage saves uploaded files on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidDir is returned for directory names that would escape the upload root.
var ErrInvalidDir = errors.New("invalid upload directory")

// Local stores files under Root/<dir>/<unix-millis><ext> and returns "/<dir>/<name>".
type Local struct {
	Root string
	now  func() time.Time
}

// NewLocal creates a Local store rooted at root.
func NewLocal(root string) *Local {
	return &Local{Root: root, now: time.Now}
}

// Dir returns the filesystem directory that holds files saved under dir.
func (l *Local) Dir(dir string) string {
	return filepath.Join(l.Root, dir)
}

// Save writes r to a new file and returns its public path.
// 元のファイル名からは拡張子のみを引き継ぎます。
func (l *Local) Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	if dir == "" || strings.ContainsAny(dir, `/\`) || dir == "." || dir == ".." {
		return "", ErrInvalidDir
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := l.Dir(dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	name := fmt.Sprintf("%d%s", l.now().UnixMilli(), ext)

	// 同一ミリ秒の衝突を避けるため O_EXCL で作成し、失敗したら連番を付ける
	var f *os.File
	for i := 0; ; i++ {
		if i > 0 {
			name = fmt.Sprintf("%d-%d%s", l.now().UnixMilli(), i, ext)
		}
		var err error
		f, err = os.OpenFile(filepath.Join(target, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) || i >= 100 {
			return "", fmt.Errorf("create upload file: %w", err)
		}
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path.Join("/", dir, name), nil
}
