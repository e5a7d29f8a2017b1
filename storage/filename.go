package storage

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceFiles = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

var pathSeparators = strings.NewReplacer("/", " ", `\`, " ")

// SecureFilename reduces a client supplied filename to a flat ASCII name that is
// safe as a storage key: no directories, no control characters, no leading dots.
// It returns "" when nothing usable is left.
//
//	SecureFilename("My cool movie.mov")   == "My_cool_movie.mov"
//	SecureFilename("../../../etc/passwd") == "etc_passwd"
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	ascii.Grow(len(name))
	for _, r := range name {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}

	name = pathSeparators.Replace(ascii.String())
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" && windowsDeviceFiles[strings.ToUpper(strings.Split(name, ".")[0])] {
		name = "_" + name
	}
	return name
}
