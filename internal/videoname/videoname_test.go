package videoname_test

import (
	"testing"

	"framekey/internal/videoname"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     videoname.ParsedName
	}{
		{
			name:     "full pattern with channel token",
			filename: "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "1132", Title: "My Show"},
		},
		{
			name:     "pattern without channel token",
			filename: "2025-05-07_08-22-55 1132 My Show.mkv",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "1132", Title: "My Show"},
		},
		{
			name:     "pattern with empty title",
			filename: "2025-05-07_08-22-55 7 (ChanX).mp4",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "7", Title: ""},
		},
		{
			name:     "plain title falls back",
			filename: "My Show.mp4",
			want:     videoname.ParsedName{Title: "My Show"},
		},
		{
			name:     "uppercase extension stripped",
			filename: "2025-05-07_08-22-55 1132 My Show.MP4",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "1132", Title: "My Show"},
		},
		{
			name:     "timestamp without code falls back",
			filename: "2025-05-07_08-22-55 My Show.mp4",
			want:     videoname.ParsedName{Title: "2025-05-07_08-22-55 My Show"},
		},
		{
			name:     "malformed timestamp falls back",
			filename: "2025-5-07_08-22-55 1132 My Show.mp4",
			want:     videoname.ParsedName{Title: "2025-5-07_08-22-55 1132 My Show"},
		},
		{
			name:     "code with leading zeros preserved",
			filename: "2025-05-07_08-22-55 007 Bond.mp4",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "007", Title: "Bond"},
		},
		{
			name:     "title case preserved",
			filename: "2025-05-07_08-22-55 1132 MiXeD CaSe.mp4",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "1132", Title: "MiXeD CaSe"},
		},
		{
			name:     "no extension",
			filename: "2025-05-07_08-22-55 1132 (ChanX) My Show",
			want:     videoname.ParsedName{Timestamp: "2025-05-07_08-22-55", Code: "1132", Title: "My Show"},
		},
		{
			name:     "empty string",
			filename: "",
			want:     videoname.ParsedName{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := videoname.Parse(tc.filename)
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.filename, got, tc.want)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	const name = "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4"
	first := videoname.Parse(name)
	for i := 0; i < 10; i++ {
		if got := videoname.Parse(name); got != first {
			t.Fatalf("parse %d diverged: %+v != %+v", i, got, first)
		}
	}
}
