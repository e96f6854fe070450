package dataset

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// identityKeys is the metadata key precedence for a declared subject
// identity. The first present key wins.
var identityKeys = []string{"identity", "person", "speaker", "actor", "subject_id"}

// ResolveIdentity derives the subject identity for a sample. A declared
// identity in metadata always beats the directory-name heuristic; when
// neither yields a token the result is empty and the sample simply does
// not participate in identity-overlap checks.
func ResolveIdentity(metadata map[string]any, dirName string) string {
	if id := identityFromMetadata(metadata); id != "" {
		return id
	}
	return identityFromName(dirName)
}

func identityFromMetadata(metadata map[string]any) string {
	for _, key := range identityKeys {
		value, ok := metadata[key]
		if !ok {
			continue
		}
		if token := metaString(value); token != "" {
			return foldIdentity(token)
		}
	}
	return ""
}

// identityFromName approximates a person token from a sample directory
// name: everything before the first ASCII digit, with trailing separators
// trimmed. "alice_01" and "alice07_take2" both map to "alice"; a name
// that starts with a digit yields no token. This is a best-effort
// heuristic, not a contract.
func identityFromName(name string) string {
	cut := len(name)
	for i, r := range name {
		if r >= '0' && r <= '9' {
			cut = i
			break
		}
	}
	token := strings.TrimRight(name[:cut], "_-. ")
	if token == "" {
		return ""
	}
	return foldIdentity(token)
}

// foldIdentity case-folds a token so spellings like "Alice" and "alice"
// compare equal across splits.
func foldIdentity(token string) string {
	return cases.Fold().String(strings.TrimSpace(token))
}

// metaString renders a metadata value as an identity token. JSON decoding
// produces float64 for numbers, so integral subject IDs are formatted
// without an exponent or fraction.
func metaString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
