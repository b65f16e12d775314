package models

import (
	"path"
	"strings"
)

// RootName is the name of the gallery root directory. It never matches a
// regular child during re-parenting.
const RootName = "."

// RootPath is the path of the gallery root and of its direct children.
const RootPath = "./"

// ChildPath returns the path stored on children of the directory (name, dirPath).
func ChildPath(name, dirPath string) string {
	joined := path.Join(dirPath, name)
	if joined == "." {
		return RootPath
	}
	return joined + "/"
}

// SplitPath turns a path relative to the gallery root into the stored
// (name, path) identity: "" is (".", "./"), "a" is ("a", "./") and
// "a/b" is ("b", "a/").
func SplitPath(rel string) (name, dirPath string) {
	clean := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" {
		return RootName, RootPath
	}
	dir, base := path.Split(clean)
	if dir == "" {
		return base, RootPath
	}
	return base, dir
}

// RelativePath is the inverse of SplitPath.
func RelativePath(name, dirPath string) string {
	return path.Join(dirPath, name)
}
