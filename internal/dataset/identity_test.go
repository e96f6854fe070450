package dataset

import "testing"

func TestResolveIdentityMetadataPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		metadata map[string]any
		dirName  string
		want     string
	}{
		{
			name:     "identity key wins over person",
			metadata: map[string]any{"identity": "alice", "person": "bob"},
			dirName:  "carol_01",
			want:     "alice",
		},
		{
			name:     "person used when identity absent",
			metadata: map[string]any{"person": "Bob"},
			dirName:  "carol_01",
			want:     "bob",
		},
		{
			name:     "speaker before actor",
			metadata: map[string]any{"actor": "dave", "speaker": "carol"},
			dirName:  "x_01",
			want:     "carol",
		},
		{
			name:     "subject_id last in precedence",
			metadata: map[string]any{"subject_id": "s042"},
			dirName:  "x_01",
			want:     "s042",
		},
		{
			name:     "numeric identity accepted",
			metadata: map[string]any{"subject_id": float64(42)},
			dirName:  "x_01",
			want:     "42",
		},
		{
			name:     "metadata wins over directory heuristic",
			metadata: map[string]any{"identity": "real_name"},
			dirName:  "other_99",
			want:     "real_name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveIdentity(tc.metadata, tc.dirName); got != tc.want {
				t.Fatalf("ResolveIdentity() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveIdentityFromDirectoryName(t *testing.T) {
	cases := []struct {
		dirName string
		want    string
	}{
		{"alice_01", "alice"},
		{"alice07_take2", "alice"},
		{"bob-2", "bob"},
		{"bob.003", "bob"},
		{"carol", "carol"},
		{"01_alice", ""},
		{"42", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ResolveIdentity(nil, tc.dirName); got != tc.want {
			t.Fatalf("ResolveIdentity(nil, %q) = %q, want %q", tc.dirName, got, tc.want)
		}
	}
}

func TestResolveIdentityCaseFolding(t *testing.T) {
	a := ResolveIdentity(nil, "Alice_01")
	b := ResolveIdentity(nil, "alice_02")
	if a != b {
		t.Fatalf("expected folded identities to match: %q vs %q", a, b)
	}
	if a != "alice" {
		t.Fatalf("expected folded identity %q, got %q", "alice", a)
	}

	if got := ResolveIdentity(map[string]any{"identity": "  Alice  "}, "x"); got != "alice" {
		t.Fatalf("expected trimmed folded identity, got %q", got)
	}
}

func TestResolveIdentityEmptyMetadataValues(t *testing.T) {
	meta := map[string]any{"identity": "", "person": "   "}
	if got := ResolveIdentity(meta, "dave_01"); got != "dave" {
		t.Fatalf("expected fallback to directory heuristic, got %q", got)
	}
}
