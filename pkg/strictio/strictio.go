// Package strictio reads and writes whole files, closing every handle before
// returning.
package strictio

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
)

const (
	filePerm  = 0o644
	chunkSize = 64 * 1024
)

// IO performs whole-file operations on a filesystem.
type IO struct {
	fs afero.Fs
}

var osIO = New(afero.NewOsFs())

// New returns an IO working on fs, or on the OS filesystem when fs is nil.
func New(fs afero.Fs) *IO {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &IO{fs: fs}
}

// ReadFileBytes reads the whole file into memory and closes it.
func (s *IO) ReadFileBytes(path string) (data []byte, err error) {
	file, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeInto(file, &err)

	return io.ReadAll(file)
}

// ReadFile reads the whole file and decodes it with enc.
func (s *IO) ReadFile(path string, enc Encoding) (string, error) {
	data, err := s.ReadFileBytes(path)
	if err != nil {
		return "", err
	}
	return enc.decode(data)
}

// WriteFileBytes replaces the file's content with data.
func (s *IO) WriteFileBytes(path string, data []byte) error {
	return s.write(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, data)
}

// WriteFile encodes text with enc and replaces the file's content with it.
// Nothing is touched on disk when text cannot be encoded.
func (s *IO) WriteFile(path string, enc Encoding, text string) error {
	data, err := enc.encode(text)
	if err != nil {
		return err
	}
	return s.WriteFileBytes(path, data)
}

// AppendFile encodes text with enc and appends it, creating the file if needed.
func (s *IO) AppendFile(path string, enc Encoding, text string) error {
	data, err := enc.encode(text)
	if err != nil {
		return err
	}
	return s.write(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, data)
}

func (s *IO) write(path string, flag int, data []byte) (err error) {
	file, err := s.fs.OpenFile(path, flag, filePerm)
	if err != nil {
		return err
	}
	defer closeInto(file, &err)

	_, err = file.Write(data)
	return err
}

// FileEqual reports whether both files hold identical bytes.
func (s *IO) FileEqual(a, b string) (equal bool, err error) {
	infoA, err := s.fs.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := s.fs.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fileA, err := s.fs.Open(a)
	if err != nil {
		return false, err
	}
	defer closeInto(fileA, &err)

	fileB, err := s.fs.Open(b)
	if err != nil {
		return false, err
	}
	defer closeInto(fileB, &err)

	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)

	for {
		nA, errA := io.ReadFull(fileA, bufA)
		nB, errB := io.ReadFull(fileB, bufB)

		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		doneA, errA := finished(errA)
		if errA != nil {
			return false, errA
		}
		doneB, errB := finished(errB)
		if errB != nil {
			return false, errB
		}

		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}

func finished(err error) (bool, error) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true, nil
	}
	return false, err
}

// closeInto closes c and reports its error through err unless err is already set.
func closeInto(c io.Closer, err *error) {
	if closeErr := c.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}

// ReadFile reads path from the OS filesystem. See IO.ReadFile.
func ReadFile(path string, enc Encoding) (string, error) {
	return osIO.ReadFile(path, enc)
}

// ReadFileUTF8 reads path as UTF-8 text.
func ReadFileUTF8(path string) (string, error) {
	return osIO.ReadFile(path, UTF8)
}

// ReadFileBytes reads path as raw bytes.
func ReadFileBytes(path string) ([]byte, error) {
	return osIO.ReadFileBytes(path)
}

// WriteFile writes text to path on the OS filesystem. See IO.WriteFile.
func WriteFile(path string, enc Encoding, text string) error {
	return osIO.WriteFile(path, enc, text)
}

// WriteFileUTF8 writes text to path as UTF-8.
func WriteFileUTF8(path, text string) error {
	return osIO.WriteFile(path, UTF8, text)
}

// WriteFileBytes writes raw bytes to path.
func WriteFileBytes(path string, data []byte) error {
	return osIO.WriteFileBytes(path, data)
}

// AppendFile appends text to path on the OS filesystem.
func AppendFile(path string, enc Encoding, text string) error {
	return osIO.AppendFile(path, enc, text)
}

// FileEqual compares two files on the OS filesystem.
func FileEqual(a, b string) (bool, error) {
	return osIO.FileEqual(a, b)
}
