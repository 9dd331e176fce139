package bookmarks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>F1</H3>
    <DL><p>
        <DT><A HREF="https://one.example.com">L1</A>
        <DT><A HREF="https://two.example.com">L2</A>
        <DT><H3>F2</H3>
        <DL><p>
            <DT><A HREF="https://three.example.com">L3</A>
        </DL><p>
    </DL><p>
</DL><p>
`

func TestParseHTMLFlattensNestedFolders(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(nestedExport))
	require.Nil(t, err)

	assert.Equal(t, []string{"F1", "F2"}, doc.Categories())
	assert.Equal(t, []BookmarkRecord{
		{Name: "L1", URL: "https://one.example.com"},
		{Name: "L2", URL: "https://two.example.com"},
	}, doc.Records("F1"))
	assert.Equal(t, []BookmarkRecord{
		{Name: "L3", URL: "https://three.example.com"},
	}, doc.Records("F2"))
	assert.Empty(t, doc.Uncategorized)
}

func TestParseHTMLRootLinksGoUncategorized(t *testing.T) {
	input := `<DL><p>
		<DT><A HREF="https://root.example.com">Root</A>
		<DT><H3>Work</H3>
		<DL><p>
			<DT><A HREF="https://work.example.com">Desk</A>
		</DL><p>
	</DL><p>`

	doc, err := ParseHTML(strings.NewReader(input))
	require.Nil(t, err)

	assert.Equal(t, []BookmarkRecord{
		{Name: "Root", URL: "https://root.example.com"},
	}, doc.Uncategorized)
	assert.Equal(t, []string{"Work"}, doc.Categories())
}

func TestParseHTMLPlaceholders(t *testing.T) {
	input := `<DL><p>
		<DT><H3>   </H3>
		<DL><p>
			<DT><A HREF="https://a.example.com"></A>
			<DT><A>no href, skipped</A>
		</DL><p>
	</DL><p>`

	doc, err := ParseHTML(strings.NewReader(input))
	require.Nil(t, err)

	require.Equal(t, []string{UnnamedCategory}, doc.Categories())
	records := doc.Records(UnnamedCategory)
	require.Len(t, records, 1)
	assert.Equal(t, UnnamedBookmark, records[0].Name)
	assert.Equal(t, "https://a.example.com", records[0].URL)
}

func TestParseHTMLWithoutBookmarksYieldsEmptyDocument(t *testing.T) {
	for _, input := range []string{
		"",
		"<html><body><p>not a bookmark file</p></body></html>",
		"<DL><p></DL><p>",
	} {
		doc, err := ParseHTML(strings.NewReader(input))
		require.Nil(t, err)
		assert.Empty(t, doc.Categories())
		assert.Empty(t, doc.Uncategorized)
		assert.Zero(t, doc.Len())
	}
}
