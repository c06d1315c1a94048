package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("  Jane Doe {text} %s  ", FormatLines, 0)
	assert.Contains(t, p, "resume: Jane Doe {text} %s\n")
	for _, l := range FieldLabels {
		assert.Contains(t, p, "- "+l)
	}
	assert.Contains(t, p, "return 'Null' for that field")
	assert.Contains(t, p, "one line per detail")
	assert.NotContains(t, p, "{fields}")
	assert.NotContains(t, p, "{format}")

	j := BuildPrompt("x", FormatJSON, 0)
	assert.Contains(t, j, `"phone_number"`)
}

func TestBuildPrompt_Truncates(t *testing.T) {
	p := BuildPrompt(strings.Repeat("a", 50), FormatLines, 10)
	assert.Contains(t, p, "resume: aaaaaaaaaa\n…(truncated)")
}

func TestBuildPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	p := BuildPrompt("élodie • go", FormatLines, 1)
	assert.True(t, utf8.ValidString(p))
	assert.Contains(t, p, "resume: é\n…(truncated)")

	p = BuildPrompt("üüü", FormatLines, 3)
	assert.NotContains(t, p, "truncated")
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
		cut  bool
	}{
		{"hello", 0, "hello", false},
		{"hello", 5, "hello", false},
		{"hello", 2, "he", true},
		{"•••", 2, "••", true},
		{"é", 1, "é", false},
	}
	for _, tt := range tests {
		got, cut := Clip(tt.in, tt.n)
		assert.Equal(t, tt.want, got, "%q/%d", tt.in, tt.n)
		assert.Equal(t, tt.cut, cut, "%q/%d", tt.in, tt.n)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestParseResponseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseResponseFormat("json"))
	assert.Equal(t, FormatLines, ParseResponseFormat("xml"))
}

func TestValidateResumeJSON(t *testing.T) {
	require.NoError(t, ValidateResumeJSON([]byte(`{"name":"Jane","skills":["Go"],"location":null}`)))
	require.NoError(t, ValidateResumeJSON([]byte(`{"skills":"Go, Rust"}`)))
	require.Error(t, ValidateResumeJSON([]byte(`{"name":42}`)))
	require.Error(t, ValidateResumeJSON([]byte(`{"age":"42"}`)))

	err := ValidateResumeJSON([]byte(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not json")
}

func TestResumeSchemaCompiledOnce(t *testing.T) {
	first, err := resumeSchema()
	require.NoError(t, err)
	second, err := resumeSchema()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema("bad.json", map[string]any{"type": 12})
	require.Error(t, err)
}

func TestSanitizeAnswerJSON(t *testing.T) {
	in := `{"Name":" Jane Doe ","Phone Number":5551234,"email":"null","Skills":"Go, , Rust","Job-Title":"N/A","age":33,"location":["x"]}`
	out, dropped, err := SanitizeAnswerJSON([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "location"}, dropped)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, map[string]any{
		"name":         "Jane Doe",
		"phone_number": "5551234",
		"skills":       []any{"Go", "Rust"},
	}, m)
	require.NoError(t, ValidateResumeJSON(out))
}

func TestIsNullish(t *testing.T) {
	for _, s := range []string{"", "Null", "'Null'", "**null**", "N/A", "Not Found", "none."} {
		assert.True(t, IsNullish(s), s)
	}
	for _, s := range []string{"Go", "Nullable Corp", "0"} {
		assert.False(t, IsNullish(s), s)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```{\"a\":1}```"))
	assert.Equal(t, "plain", StripCodeFence("  plain "))
}

func TestSendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Test"))
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("down"))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	raw, err := SendJSON(context.Background(), nil, srv.URL+"/ok", map[string]any{"a": 1}, map[string]string{"X-Test": "v"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))

	_, err = SendJSON(context.Background(), nil, srv.URL+"/fail", nil, map[string]string{"X-Test": "v"}, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Equal(t, "down", se.Body)
}
