package input

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
)

const phoneLine = "Contacts: +3(012)-345-6789, +3(000)-000-0000"

func TestDecodeText(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(phoneLine))
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(phoneLine))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "plain UTF-8", data: []byte(phoneLine), want: phoneLine},
		{name: "UTF-8 BOM stripped", data: append([]byte{0xEF, 0xBB, 0xBF}, phoneLine...), want: phoneLine},
		{name: "UTF-16LE with BOM", data: utf16le, want: phoneLine},
		{name: "UTF-16BE with BOM", data: utf16be, want: phoneLine},
		{name: "Cyrillic", data: []byte("Телефон: +3(012)-345-6789"), want: "Телефон: +3(012)-345-6789"},
		{name: "invalid UTF-8 replaced", data: []byte{'a', 0xFF, 'b'}, want: "a�b"},
		{name: "empty", data: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func buildZip(t *testing.T, files map[string][]byte, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, dir := range dirs {
		_, err := zw.Create(dir + "/")
		require.NoError(t, err)
	}
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildDOCX(t *testing.T) []byte {
	t.Helper()
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Office: </w:t></w:r><w:r><w:t>+3(012)</w:t></w:r><w:r><w:t>-345-6789</w:t></w:r></w:p>
    <w:p><w:r><w:t>Home:</w:t><w:tab/><w:t>+3(000)-000-0000</w:t></w:r></w:p>
  </w:body>
</w:document>`
	return buildZip(t, map[string][]byte{
		"[Content_Types].xml": []byte(`<Types/>`),
		"word/document.xml":   []byte(document),
	})
}

func TestExtract_DOCX(t *testing.T) {
	got, err := Extract("letter.docx", buildDOCX(t), DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, "Office: +3(012)-345-6789\nHome:\t+3(000)-000-0000", string(got))
}

func TestExtract_EmptyDOCX(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"word/document.xml": []byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`),
	})

	got, err := Extract("blank.docx", data, DefaultLimits())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_ArchiveBeyondDepth(t *testing.T) {
	inner := buildZip(t, map[string][]byte{"deep.txt": []byte("deep")})

	got, err := extract("inner.zip", inner, DefaultLimits(), maxArchiveDepth)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_DOCXMissingDocument(t *testing.T) {
	data := buildZip(t, map[string][]byte{"other.xml": []byte("<a/>")})

	_, err := Extract("letter.docx", data, DefaultLimits())
	assert.Error(t, err)
}

func TestExtract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Phone"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Office"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "+3(012)-345-6789"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Extract("book.XLSX", buf.Bytes(), DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, "Name\tPhone\nOffice\t+3(012)-345-6789", string(got))
}

func TestExtract_Zip(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"notes/a.txt":   []byte("first +3(012)-345-6789"),
		"notes/b.docx":  buildDOCX(t),
		"notes/empty.x": nil,
	}, "notes")

	got, err := Extract("bundle.zip", data, DefaultLimits())
	require.NoError(t, err)
	assert.Contains(t, string(got), "first +3(012)-345-6789")
	assert.Contains(t, string(got), "Office: +3(012)-345-6789")
	assert.Contains(t, string(got), "Home:\t+3(000)-000-0000")
}

func TestExtract_ZipEntryLimits(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"big.txt": bytes.Repeat([]byte("x"), 64),
	})

	got, err := Extract("bundle.zip", data, Limits{MaxEntrySize: 16})
	require.NoError(t, err)
	assert.Empty(t, got, "oversized entries are skipped")

	got, err = Extract("bundle.zip", data, Limits{MaxEntries: 1})
	require.NoError(t, err)
	assert.Len(t, got, 64)
}

func TestExtract_NestedDepth(t *testing.T) {
	inner := buildZip(t, map[string][]byte{"deep.txt": []byte("deep")})
	middle := buildZip(t, map[string][]byte{"inner.zip": inner, "mid.txt": []byte("mid")})
	outer := buildZip(t, map[string][]byte{"middle.zip": middle})

	got, err := Extract("outer.zip", outer, DefaultLimits())
	require.NoError(t, err)
	assert.Contains(t, string(got), "mid")
	assert.NotContains(t, string(got), "deep")
}

func TestExtract_InvalidBinaries(t *testing.T) {
	for _, name := range []string{"doc.pdf", "book.xlsx", "letter.docx", "bundle.zip", "bundle.7z"} {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(name, []byte("definitely not a binary document"), DefaultLimits())
			assert.Error(t, err)
		})
	}
}
