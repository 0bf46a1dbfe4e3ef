package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeMappedValues(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"New Delhi", "Delhi"},
		{"East Delhi", "Delhi"},
		{"Delhi NCR", "Delhi"},
		{"Delhi", "Delhi"},
		{"Mumbai", "Mumbai"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeLocation(tt.raw); got != tt.want {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeAreaType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Commercial", "Industrial Areas"},
		{"Commercial Area", "Industrial Areas"},
		{"Industrial", "Industrial Areas"},
		{"Residential", "Residential, Rural and other Areas"},
		{"Urban", "Residential, Rural and other Areas"},
		{"Sensitive Areas", "Sensitive Areas"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeAreaType(tt.raw); got != tt.want {
				t.Errorf("NormalizeAreaType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentityOnUnmapped(t *testing.T) {
	for _, raw := range []string{"Chennai", "nonsense value", " ", "delhi"} {
		if got := Normalize(raw, locationAliases); got != raw {
			t.Errorf("Normalize(%q) = %q, want identity", raw, got)
		}
	}
}

func TestNewVocabulary(t *testing.T) {
	if _, err := NewVocabulary(nil); err == nil {
		t.Error("expected error for empty class list")
	}
	if _, err := NewVocabulary([]string{"a", "b", "a"}); err == nil {
		t.Error("expected error for duplicate class")
	}

	v, err := NewVocabulary([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewVocabulary failed: %v", err)
	}
	if v.Size() != 3 {
		t.Errorf("Size() = %d, want 3", v.Size())
	}
}

func TestSafeEncodeMember(t *testing.T) {
	v, _ := NewVocabulary([]string{"Delhi", "Kolkata", "Mumbai"})

	code, fellBack := v.SafeEncode("Kolkata")
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if fellBack {
		t.Error("member encode should not report fallback")
	}
}

func TestSafeEncodeSentinel(t *testing.T) {
	v, _ := NewVocabulary([]string{"Delhi", "Mumbai", "unknown"})

	code, fellBack := v.SafeEncode("Atlantis")
	if code != 2 {
		t.Errorf("code = %d, want sentinel code 2", code)
	}
	if !fellBack {
		t.Error("sentinel encode should report fallback")
	}
}

func TestSafeEncodeFirstClassFallback(t *testing.T) {
	v, _ := NewVocabulary([]string{"Delhi", "Mumbai"})

	tests := []string{"Atlantis", "", "delhi"}
	for _, value := range tests {
		code, fellBack := v.SafeEncode(value)
		if code != 0 {
			t.Errorf("SafeEncode(%q) = %d, want first-class code 0", value, code)
		}
		if !fellBack {
			t.Errorf("SafeEncode(%q) should report fallback", value)
		}
	}
}

func TestSafeEncodeAlwaysInRange(t *testing.T) {
	v, _ := NewVocabulary([]string{"a", "b", "unknown"})
	for _, value := range []string{"a", "b", "unknown", "", "z", "A"} {
		code, _ := v.SafeEncode(value)
		if code < 0 || code >= v.Size() {
			t.Errorf("SafeEncode(%q) = %d, out of range [0, %d)", value, code, v.Size())
		}
	}
}

func TestClassesIsCopy(t *testing.T) {
	v, _ := NewVocabulary([]string{"a", "b"})
	classes := v.Classes()
	classes[0] = "mutated"

	code, fellBack := v.SafeEncode("a")
	if code != 0 || fellBack {
		t.Error("mutating Classes() result should not affect the vocabulary")
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encoder.json")
	if err := os.WriteFile(path, []byte(`{"classes": ["Delhi", "Mumbai"]}`), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary failed: %v", err)
	}
	if v.Size() != 2 {
		t.Errorf("Size() = %d, want 2", v.Size())
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadVocabulary(filepath.Join(dir, "absent.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("empty classes", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.json")
		os.WriteFile(empty, []byte(`{"classes": []}`), 0o600)
		if _, err := LoadVocabulary(empty); err == nil {
			t.Error("expected error for empty class list")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		os.WriteFile(bad, []byte(`{`), 0o600)
		if _, err := LoadVocabulary(bad); err == nil {
			t.Error("expected error for malformed json")
		}
	})
}
