package urlinfo

import (
	"net/url"
	"path"
	"strings"
)

// File-extension categories. Executables outrank every other category: an
// executable-looking extension is always reported as such, even when the
// extension could informally belong elsewhere.
const (
	ExtNone       = 0
	ExtExecutable = 1
	ExtArchive    = 2
	ExtMedia      = 3
	ExtDocument   = 4
	ExtWeb        = 5
	ExtOther      = 6
)

var executableExts = map[string]bool{
	"exe": true, "bat": true, "cmd": true, "sh": true, "msi": true,
	"scr": true, "vbs": true, "pif": true, "com": true, "ps1": true,
	"app": true, "jar": true, "py": true, "dll": true, "lnk": true,
	"bin": true,
}

var archiveExts = map[string]bool{
	"zip": true, "rar": true, "tar": true, "gz": true, "7z": true,
}

var mediaExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"tiff": true, "mp4": true, "avi": true, "mov": true, "wmv": true,
	"mp3": true, "wav": true, "aac": true,
}

var documentExts = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true, "txt": true,
}

var webExts = map[string]bool{
	"html": true, "htm": true, "php": true, "asp": true, "js": true,
	"css": true, "aspx": true, "json": true, "xml": true,
}

// CategorizeExt maps a raw file extension (no dot) to its category code.
// Total and deterministic: every string lands in exactly one category.
func CategorizeExt(ext string) int {
	ext = strings.ToLower(strings.TrimSpace(ext))
	switch {
	case ext == "":
		return ExtNone
	case executableExts[ext]:
		return ExtExecutable
	case archiveExts[ext]:
		return ExtArchive
	case mediaExts[ext]:
		return ExtMedia
	case documentExts[ext]:
		return ExtDocument
	case webExts[ext]:
		return ExtWeb
	default:
		return ExtOther
	}
}

// PathExtension returns the lowercased extension of the URL's last path
// segment, without the dot, or "" when there is none.
func PathExtension(rawURL string) string {
	u := Normalize(rawURL, "http")
	p := u
	if parsed, err := url.Parse(u); err == nil {
		p = parsed.Path
	}
	ext := path.Ext(p)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
