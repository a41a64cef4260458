// Package apitype classifies a repository so the hook knows which
// validation policy applies. Decision-service repos deploy to PCF,
// SHP/IKP repos are marked by their folders or the -ds- name pattern,
// and everything else is General (no meta validation required).
package apitype

import (
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Type is the classification of a repository.
type Type string

const (
	TypeSHP     Type = "SHP"
	TypeIKP     Type = "IKP"
	TypeSHPIKP  Type = "SHP/IKP"
	TypePCF     Type = "PCF"
	TypeGeneral Type = "General"
	TypeUnknown Type = "UNKNOWN"
)

// RequiresValidation reports whether repos of this type must carry
// compliant api.meta descriptors.
func (t Type) RequiresValidation() bool {
	switch t {
	case TypeSHP, TypeIKP, TypeSHPIKP, TypePCF:
		return true
	}
	return false
}

// Identify classifies the repository at root. Folder markers win over
// name patterns; -ds- names without folders cannot be narrowed further
// than SHP/IKP.
func Identify(root string) Type {
	repoName := RepoName(root)
	name := strings.ToLower(repoName)

	switch {
	case dirExists(filepath.Join(root, "SHP")):
		return TypeSHP
	case dirExists(filepath.Join(root, "IKP")):
		return TypeIKP
	case strings.Contains(name, "-ds-"):
		return TypeSHPIKP
	case strings.Contains(name, "-decision-service-"):
		return TypePCF
	default:
		return TypeGeneral
	}
}

// RepoName resolves the repository name from the origin remote URL,
// falling back to the directory basename.
func RepoName(root string) string {
	if repo, err := gogit.PlainOpen(root); err == nil {
		if remote, err := repo.Remote("origin"); err == nil {
			urls := remote.Config().URLs
			if len(urls) > 0 && urls[0] != "" {
				url := strings.TrimSuffix(urls[0], ".git")
				if i := strings.LastIndex(url, "/"); i >= 0 {
					url = url[i+1:]
				}
				if url != "" {
					return url
				}
			}
		}
	}
	return filepath.Base(root)
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
