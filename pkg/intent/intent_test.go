package intent

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/breadsaver/pkg/account"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := Descriptor{Action: ActionLogin, BranchType: account.BranchMultiple, BakeryName: "Crumbs & Co + 100%"}

	got, ok := Decode(d.Encode())
	assert.True(t, ok)
	assert.Equal(t, d, got)
}

func TestEncodeIsURLSafe(t *testing.T) {
	encoded := Descriptor{Action: ActionSignup, BranchType: account.BranchSingle, BakeryName: "A&B=C"}.Encode()
	assert.NotContains(t, encoded, "&")
	assert.NotContains(t, encoded, "=")
	assert.NotContains(t, encoded, "{")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		state  string
		want   Descriptor
		wantOK bool
	}{
		{
			name:   "empty",
			state:  "",
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle},
			wantOK: false,
		},
		{
			name:   "malformed",
			state:  "not-json",
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle},
			wantOK: false,
		},
		{
			name:   "truncated json",
			state:  url.QueryEscape(`{"action":"login"`),
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle},
			wantOK: false,
		},
		{
			name:   "already unescaped json",
			state:  `{"action":"login","branchType":"multiple"}`,
			want:   Descriptor{Action: ActionLogin, BranchType: account.BranchMultiple},
			wantOK: true,
		},
		{
			name:   "raw json keeps plus and percent",
			state:  `{"action":"signup","branchType":"single","bakeryName":"Bread+Butter 100%25"}`,
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle, BakeryName: "Bread+Butter 100%25"},
			wantOK: true,
		},
		{
			name:   "escaped json keeps plus and percent",
			state:  url.QueryEscape(`{"action":"signup","branchType":"single","bakeryName":"Bread+Butter 100%"}`),
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle, BakeryName: "Bread+Butter 100%"},
			wantOK: true,
		},
		{
			name:   "missing fields default",
			state:  url.QueryEscape(`{}`),
			want:   Descriptor{Action: ActionSignup, BranchType: account.BranchSingle},
			wantOK: true,
		},
		{
			name:   "unknown values are kept",
			state:  url.QueryEscape(`{"action":"register","branchType":"franchise","bakeryName":"X"}`),
			want:   Descriptor{Action: "register", BranchType: "franchise", BakeryName: "X"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.state)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsLogin(t *testing.T) {
	assert.True(t, Descriptor{Action: ActionLogin}.IsLogin())
	assert.False(t, Descriptor{Action: ActionSignup}.IsLogin())
	assert.False(t, Descriptor{Action: "register"}.IsLogin())
}

func TestFromRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, Default(), FromRequest("", ""))
	})

	t.Run("action only", func(t *testing.T) {
		got := FromRequest("login", "")
		assert.Equal(t, Descriptor{Action: ActionLogin, BranchType: account.BranchSingle}, got)
	})

	t.Run("state overrides action", func(t *testing.T) {
		state := Descriptor{Action: ActionSignup, BranchType: account.BranchMultiple, BakeryName: "Crumbs"}.Encode()
		got := FromRequest("login", state)
		assert.Equal(t, Descriptor{Action: ActionSignup, BranchType: account.BranchMultiple, BakeryName: "Crumbs"}, got)
	})

	t.Run("state decoded by the query parser is used verbatim", func(t *testing.T) {
		q, err := url.ParseQuery("state=" + url.QueryEscape(`{"action":"signup","branchType":"multiple","bakeryName":"Bread+Butter"}`))
		assert.NoError(t, err)

		got := FromRequest("", q.Get("state"))
		assert.Equal(t, Descriptor{Action: ActionSignup, BranchType: account.BranchMultiple, BakeryName: "Bread+Butter"}, got)
	})

	t.Run("malformed state falls back to action", func(t *testing.T) {
		got := FromRequest("login", "%%%")
		assert.Equal(t, Descriptor{Action: ActionLogin, BranchType: account.BranchSingle}, got)
	})
}
