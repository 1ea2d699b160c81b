package media

import "testing"

func TestClassifyMIME(t *testing.T) {
	cases := map[string]FileType{
		"image/png":              FileTypeImage,
		"IMAGE/JPEG":             FileTypeImage,
		"video/mp4; codecs=avc1": FileTypeVideo,
		" video/quicktime ":      FileTypeVideo,
	}
	for in, want := range cases {
		got, err := ClassifyMIME(in)
		if err != nil || got != want {
			t.Fatalf("%q: got=%s err=%v want=%s", in, got, err, want)
		}
	}
	if _, err := ClassifyMIME("application/pdf"); err == nil {
		t.Fatalf("expected pdf to be rejected")
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		name, mime, want string
	}{
		{name: "Goal.JPG", mime: "image/jpeg", want: "jpg"},
		{name: "clip", mime: "video/mp4", want: "mp4"},
		{name: "icon", mime: "image/svg+xml", want: "svg"},
		{name: "blob", mime: "", want: "bin"},
	}
	for _, tc := range cases {
		if got := Extension(tc.name, tc.mime); got != tc.want {
			t.Fatalf("%s/%s: got=%s want=%s", tc.name, tc.mime, got, tc.want)
		}
	}
}

func TestParseFileType(t *testing.T) {
	if _, filtered, err := ParseFileType("all"); err != nil || filtered {
		t.Fatalf("expected no filter for all, got filtered=%v err=%v", filtered, err)
	}
	if got, filtered, _ := ParseFileType("Video"); !filtered || got != FileTypeVideo {
		t.Fatalf("expected video filter, got %s", got)
	}
	if _, _, err := ParseFileType("audio"); err == nil {
		t.Fatalf("expected error for audio")
	}
}
