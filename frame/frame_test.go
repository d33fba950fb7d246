package frame

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{
			name:    "empty stream",
			input:   "",
			wantErr: "EOF",
		},
		{
			name:    "non-numeric length",
			input:   "Content-Length: apples",
			wantErr: "invalid content length value",
		},
		{
			name:    "stream ends inside length",
			input:   "Content-Length: 10",
			wantErr: "end of stream while parsing content length",
		},
		{
			name:    "missing first LF",
			input:   "Content-Length: 10\r    ",
			wantErr: "expected '␍␊␍␊' got '␍   '",
		},
		{
			name:    "missing second CR",
			input:   "Content-Length: 10\r\n    ",
			wantErr: "expected '␍␊␍␊' got '␍␊  '",
		},
		{
			name:    "missing second LF",
			input:   "Content-Length: 10\r\n\r    ",
			wantErr: "expected '␍␊␍␊' got '␍␊␍ '",
		},
		{
			name:    "wrong header",
			input:   "Content-Width: 10\r\n\r\n",
			wantErr: "expected 'Content-Length: ' got 'Content-Width: 1'",
		},
		{
			name:  "valid message",
			input: "Content-Length: 11\r\n\r\nhello world",
			want:  "hello world",
		},
		{
			name:    "body shorter than length",
			input:   "Content-Length: 99\r\n\r\nhello world",
			wantErr: "EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadContent(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ReadContent() = %q, want error %q", got, tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("ReadContent() error = %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadContent() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadContent_Sequential(t *testing.T) {
	r := strings.NewReader("Content-Length: 5\r\n\r\nhelloContent-Length: 5\r\n\r\nworld")

	first, err := ReadContent(r)
	if err != nil {
		t.Fatalf("first ReadContent() error = %v", err)
	}
	if first != "hello" {
		t.Errorf("first body = %q, want %q", first, "hello")
	}

	second, err := ReadContent(r)
	if err != nil {
		t.Fatalf("second ReadContent() error = %v", err)
	}
	if second != "world" {
		t.Errorf("second body = %q, want %q", second, "world")
	}

	if _, err := ReadContent(r); err == nil || err.Error() != "EOF" {
		t.Errorf("expected EOF after last envelope, got %v", err)
	}
}

func TestWriteContent(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteContent(&buf, "hello world"); err != nil {
		t.Fatalf("WriteContent() error = %v", err)
	}
	if got := buf.String(); got != "Content-Length: 11\r\n\r\nhello world" {
		t.Errorf("WriteContent() wrote %q", got)
	}
}

func TestWriteContent_Multiple(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteContent(&buf, "hello"); err != nil {
		t.Fatalf("WriteContent() error = %v", err)
	}
	if err := WriteContent(&buf, "world"); err != nil {
		t.Fatalf("WriteContent() error = %v", err)
	}
	want := "Content-Length: 5\r\n\r\nhelloContent-Length: 5\r\n\r\nworld"
	if got := buf.String(); got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestContentRoundTrip(t *testing.T) {
	bodies := []string{"", "x", "hello world", `{"jsonrpc":"2.0","id":1}`, strings.Repeat("a", 4096)}

	for _, body := range bodies {
		var buf bytes.Buffer
		if err := WriteContent(&buf, body); err != nil {
			t.Fatalf("WriteContent(%q) error = %v", body, err)
		}
		got, err := ReadContent(&buf)
		if err != nil {
			t.Fatalf("ReadContent() error = %v for body %q", err, body)
		}
		if got != body {
			t.Errorf("round trip = %q, want %q", got, body)
		}
		if buf.Len() != 0 {
			t.Errorf("reader not at EOF after body %q", body)
		}
	}
}
