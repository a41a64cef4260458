package apitype

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRequiresValidation(t *testing.T) {
	governed := []Type{TypeSHP, TypeIKP, TypeSHPIKP, TypePCF}
	for _, typ := range governed {
		if !typ.RequiresValidation() {
			t.Errorf("%s should require validation", typ)
		}
	}
	for _, typ := range []Type{TypeGeneral, TypeUnknown} {
		if typ.RequiresValidation() {
			t.Errorf("%s should not require validation", typ)
		}
	}
}

func TestIdentifyFolderMarkers(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "SHP")
	if got := Identify(root); got != TypeSHP {
		t.Fatalf("SHP folder -> %s, want SHP", got)
	}

	root = t.TempDir()
	mkdir(t, root, "IKP")
	if got := Identify(root); got != TypeIKP {
		t.Fatalf("IKP folder -> %s, want IKP", got)
	}
}

func TestIdentifyFolderWinsOverName(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "loans-ds-pricing")
	mkdir(t, root, "SHP")
	if got := Identify(root); got != TypeSHP {
		t.Fatalf("folder marker should win over -ds- name, got %s", got)
	}
}

func TestIdentifyNamePatterns(t *testing.T) {
	cases := map[string]Type{
		"loans-ds-pricing":               TypeSHPIKP,
		"loans-decision-service-pricing": TypePCF,
		"plain-service":                  TypeGeneral,
		// "ds" inside a word is not the marker
		"dashboards": TypeGeneral,
	}
	for name, want := range cases {
		parent := t.TempDir()
		root := filepath.Join(parent, name)
		if err := os.MkdirAll(root, 0755); err != nil {
			t.Fatal(err)
		}
		if got := Identify(root); got != want {
			t.Errorf("%s -> %s, want %s", name, got, want)
		}
	}
}

func TestRepoNameFallsBackToBasename(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "loans-api")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if got := RepoName(root); got != "loans-api" {
		t.Fatalf("RepoName = %q, want loans-api", got)
	}
}

func mkdir(t *testing.T, root, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
		t.Fatal(err)
	}
}
