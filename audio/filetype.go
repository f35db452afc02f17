// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FileType is a four character code identifying a container.
type FileType uint32

const (
	FileTypeCAF  FileType = 'c'<<24 | 'a'<<16 | 'f'<<8 | 'f'
	FileTypeWAVE FileType = 'W'<<24 | 'A'<<16 | 'V'<<8 | 'E'
	FileTypeAIFF FileType = 'A'<<24 | 'I'<<16 | 'F'<<8 | 'F'
	FileTypeMP3  FileType = 'M'<<24 | 'P'<<16 | 'G'<<8 | '3'
	FileTypeOgg  FileType = 'O'<<24 | 'g'<<16 | 'g'<<8 | 'S'
	FileTypeFLAC FileType = 'f'<<24 | 'L'<<16 | 'a'<<8 | 'C'
)

// SniffLen is the number of leading bytes DetectFileType looks at.
const SniffLen = 12

var fileTypeNames = map[FileType]string{
	FileTypeCAF:  "caf",
	FileTypeWAVE: "wav",
	FileTypeAIFF: "aiff",
	FileTypeMP3:  "mp3",
	FileTypeOgg:  "ogg",
	FileTypeFLAC: "flac",
}

var fileTypeAliases = map[string]FileType{
	"caf":  FileTypeCAF,
	"caff": FileTypeCAF,
	"wav":  FileTypeWAVE,
	"wave": FileTypeWAVE,
	"aif":  FileTypeAIFF,
	"aiff": FileTypeAIFF,
	"aifc": FileTypeAIFF,
	"mp3":  FileTypeMP3,
	"ogg":  FileTypeOgg,
	"oga":  FileTypeOgg,
	"flac": FileTypeFLAC,
}

// Name returns the short lowercase name, e.g. "wav".
func (t FileType) Name() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return t.String()
}

func (t FileType) String() string {
	b := [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	return string(b[:])
}

// Extension returns the conventional file extension including the dot.
func (t FileType) Extension() string {
	return "." + t.Name()
}

// ParseFileType accepts a short name ("wav", "caf", "aiff", ...) or a
// four character code.
func ParseFileType(s string) (FileType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := fileTypeAliases[key]; ok {
		return t, nil
	}

	for t := range fileTypeNames {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown file type %q", ErrInvalidParameter, s)
}

// FileTypeFromPath guesses the container from a path extension.
func FileTypeFromPath(path string) (FileType, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	t, ok := fileTypeAliases[strings.ToLower(ext)]
	return t, ok
}

func (t FileType) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

func (t *FileType) UnmarshalText(text []byte) error {
	parsed, err := ParseFileType(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// DetectFileType identifies a container by its magic bytes. header should hold
// at least SniffLen bytes.
func DetectFileType(header []byte) (FileType, error) {
	switch {
	case len(header) >= 12 && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FileTypeWAVE, nil
	case len(header) >= 12 && bytes.Equal(header[0:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return FileTypeAIFF, nil
	case bytes.HasPrefix(header, []byte("caff")):
		return FileTypeCAF, nil
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FileTypeFLAC, nil
	case bytes.HasPrefix(header, []byte("OggS")):
		return FileTypeOgg, nil
	case bytes.HasPrefix(header, []byte("ID3")):
		return FileTypeMP3, nil
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return FileTypeMP3, nil
	}

	return 0, ErrUnsupportedFormat
}

// SniffFileType reads the leading bytes of rs, identifies the container and
// rewinds rs to the start.
func SniffFileType(rs io.ReadSeeker) (FileType, error) {
	header := make([]byte, SniffLen)

	n, err := io.ReadFull(rs, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	return DetectFileType(header[:n])
}
