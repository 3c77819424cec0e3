package routepath

import "testing"

func TestSegmentName(t *testing.T) {
	tests := []struct {
		segment string
		name    string
		ok      bool
	}{
		{"[id]", "id", true},
		{"[id].ts", "id", true},
		{"[userId].js", "userId", true},
		{"users", "", false},
		{"users.ts", "", false},
		{"[id", "", false},
		{"id]", "", false},
		{"[id].test.ts", "", false},
		{"", "", false},
		{"[", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			name, ok := SegmentName(tt.segment)
			if name != tt.name || ok != tt.ok {
				t.Errorf("SegmentName(%q) = (%q, %v), want (%q, %v)", tt.segment, name, ok, tt.name, tt.ok)
			}
		})
	}
}

func TestNormalizeAbsolute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"api/[id].ts", "api/1"},
		{"api/1.ts", "api/1"},
		{"api/[id]/posts/[postId].js", "api/1/posts/1"},
		{"api/users.ts", "api/users"},
		{"api/users/index.go", "api/users/index"},
		{"index.js", "index"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizeAbsolute(tt.path); got != tt.want {
				t.Errorf("NormalizeAbsolute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizeAbsoluteIdempotent(t *testing.T) {
	paths := []string{"api/[id].ts", "api/1.ts", "api/users/[name]/index.js"}
	for _, p := range paths {
		once := NormalizeAbsolute(p)
		if twice := NormalizeAbsolute(once); twice != once {
			t.Errorf("NormalizeAbsolute not idempotent for %q: %q != %q", p, twice, once)
		}
	}
}

func TestNormalizeAbsoluteCollision(t *testing.T) {
	if NormalizeAbsolute("api/[id].ts") != NormalizeAbsolute("api/1.ts") {
		t.Error("api/[id].ts and api/1.ts must normalize equally")
	}
	if NormalizeAbsolute("api/[id].ts") == NormalizeAbsolute("api/users.ts") {
		t.Error("api/[id].ts and api/users.ts must not normalize equally")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"hello.js", `hello\.js`},
		{"a+b", `a\+b`},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello.js", "hello"},
		{"hello", "hello"},
		{"[id].ts", "[id]"},
		{"archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
