package constants

import "testing"

func TestExtensionSets(t *testing.T) {
	for _, ext := range []string{".DOCX", "pdf", ".doc", "txt"} {
		if !IsDocumentExt(ext) || IsAudioExt(ext) {
			t.Errorf("%s should be a document only", ext)
		}
	}
	for _, ext := range []string{".MP3", "wav", ".m4a", "ogg", ".flac"} {
		if !IsAudioExt(ext) || IsDocumentExt(ext) {
			t.Errorf("%s should be audio only", ext)
		}
	}
	if IsDocumentExt(".exe") || IsAudioExt("") {
		t.Error("unexpected match")
	}
}

func TestMapExtToFormat(t *testing.T) {
	cases := map[string]string{".docx": DOCX, "PDF": PDF, ".doc": DOC, "txt": TXT, ".png": ""}
	for in, want := range cases {
		if got := MapExtToFormat(in); got != want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
