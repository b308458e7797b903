package diag

import "testing"

func TestBagAddRespectsCap(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Errorf(IOReadFailed, "a.ts", 0, "boom")) {
		t.Fatalf("first Add rejected")
	}
	if !bag.Add(Errorf(IOReadFailed, "b.ts", 0, "boom")) {
		t.Fatalf("second Add rejected")
	}
	if bag.Add(Errorf(IOReadFailed, "c.ts", 0, "boom")) {
		t.Fatalf("Add above cap accepted")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Infof(StripInfo, "a.ts", 0, "note"))
	bag.Add(Warningf(StripUnmappedExtension, "logo.png", 0, "skipped"))
	if bag.HasErrors() {
		t.Fatalf("bag without errors reports HasErrors")
	}
	if !bag.HasWarnings() {
		t.Fatalf("bag with warning misses HasWarnings")
	}
	bag.Add(Errorf(StripUnterminatedBlock, "a.ts", 3, "unterminated"))
	if !bag.HasErrors() {
		t.Fatalf("bag with error misses HasErrors")
	}
}

func TestBagSortStableOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Errorf(StripUnterminatedBlock, "b.ts", 2, "x"))
	bag.Add(Warningf(GenEditedFile, "a.ts", 9, "x"))
	bag.Add(Errorf(IOWriteFailed, "a.ts", 9, "x"))
	bag.Add(Errorf(IOReadFailed, "a.ts", 1, "x"))
	bag.Sort()

	items := bag.Items()
	wantOrder := []Code{IOReadFailed, IOWriteFailed, GenEditedFile, StripUnterminatedBlock}
	for i, want := range wantOrder {
		if items[i].Code != want {
			t.Fatalf("position %d: code %v, want %v", i, items[i].Code, want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	d := Errorf(StripUnterminatedBlock, "a.ts", 3, "unterminated")
	bag.Add(d)
	bag.Add(d)
	bag.Add(Errorf(StripUnterminatedBlock, "a.ts", 4, "unterminated"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(Errorf(IOReadFailed, "a.ts", 0, "x"))
	b := NewBag(1)
	b.Add(Errorf(IOReadFailed, "b.ts", 0, "x"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged Len = %d, want 2", a.Len())
	}
}

func TestCodeIDGroups(t *testing.T) {
	cases := []struct {
		code Code
		id   string
	}{
		{StripUnterminatedBlock, "STRIP1002"},
		{GenTemplateExec, "GEN2002"},
		{ProjManifestParse, "PRJ3002"},
		{IOWriteFailed, "IO4002"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.id {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.id)
		}
	}
}

func TestEveryCodeHasTitle(t *testing.T) {
	codes := []Code{
		StripInfo, StripUnknownSyntax, StripUnterminatedBlock,
		StripUnmappedExtension, StripDirectivesResidual,
		GenInfo, GenTemplateParse, GenTemplateExec, GenUnknownGenerator,
		GenTargetExists, GenEditedFile, GenBadName,
		ProjInfo, ProjManifestLost, ProjManifestParse, ProjManifestField,
		ProjBadSyntaxID, ProjBadPackager,
		IOInfo, IOReadFailed, IOWriteFailed, IOWalkFailed, IOLedger,
	}
	for _, c := range codes {
		if c.Title() == codeDescription[UnknownCode] && c != UnknownCode {
			t.Errorf("code %d has no description", c)
		}
	}
}
