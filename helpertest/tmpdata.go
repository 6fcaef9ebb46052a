package helpertest

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
)

type TmpFolder struct {
	Path   string
	Error  error
	prefix string
}

type TmpFile struct {
	Path   string
	Error  error
	Folder *TmpFolder
}

func NewTmpFolder(prefix string) *TmpFolder {
	if len(prefix) == 0 {
		prefix = "sigwatch"
	}

	path, err := os.MkdirTemp("", prefix)

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: prefix,
	}
}

func (tf *TmpFolder) Clean() error {
	if len(tf.Path) > 0 {
		return os.RemoveAll(tf.Path)
	}

	return nil
}

func (tf *TmpFolder) CreateSubFolder(name string) *TmpFolder {
	path := filepath.Join(tf.Path, name)
	err := os.Mkdir(path, fs.ModePerm)

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: tf.prefix,
	}
}

// CreateStringFile writes the lines separated by line breaks into a new file
func (tf *TmpFolder) CreateStringFile(name string, lines ...string) *TmpFile {
	f, err := os.Create(filepath.Join(tf.Path, name))
	if err != nil {
		return &TmpFile{Error: err, Folder: tf}
	}

	w := bufio.NewWriter(f)

	for i, l := range lines {
		if i > 0 {
			if _, err = w.WriteString("\n"); err != nil {
				break
			}
		}

		if _, err = w.WriteString(l); err != nil {
			break
		}
	}

	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}

	f.Close()

	if err == nil {
		_, err = os.Stat(f.Name())
	}

	return &TmpFile{
		Path:   f.Name(),
		Error:  err,
		Folder: tf,
	}
}

func (tf *TmpFolder) JoinPath(name string) string {
	return filepath.Join(tf.Path, name)
}
