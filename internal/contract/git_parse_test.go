package contract

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shaA = "1111111111111111111111111111111111111111"
	shaB = "2222222222222222222222222222222222222222"
)

func TestParseCommitObject(t *testing.T) {
	raw := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
		"parent " + shaA + "\n" +
		"parent " + shaB + "\n" +
		"author Jane Q. Doe <jane@example.com> 1512531224 -0530\n" +
		"committer Bot <bot@example.com> 1512531300 +0000\n" +
		"\n" +
		"author in the message body is ignored\n"

	info, err := ParseCommitObject([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []string{shaA, shaB}, info.ParentIDs)
	assert.Equal(t, "Jane Q. Doe", info.AuthorName)
	assert.Equal(t, "jane@example.com", info.AuthorEmail)
	assert.Equal(t, int64(1512531224), info.AuthorTime.Unix())
	_, offset := info.AuthorTime.Zone()
	assert.Equal(t, -(5*3600 + 30*60), offset)
}

func TestParseCommitObjectMissingAuthor(t *testing.T) {
	_, err := ParseCommitObject([]byte("tree abc\n\nmsg\n"))
	assert.Error(t, err)
}

func TestParseSignature(t *testing.T) {
	name, email, when, err := ParseSignature("Name With <Angle> <x@y.z> 0 +0100")
	require.NoError(t, err)
	assert.Equal(t, "Name With <Angle>", name)
	assert.Equal(t, "x@y.z", email)
	assert.True(t, when.Equal(time.Unix(0, 0)))

	for _, bad := range []string{"no email 0 +0000", "A <a@b> notanumber +0000", "A <a@b> 0 0100", "A <a@b> 0"} {
		_, _, _, err := ParseSignature(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTree(t *testing.T) {
	raw := "100644 blob aaaa\tsrc/main.go\x00" +
		"160000 commit bbbb\tvendor/sub\x00" +
		"120000 blob cccc\tlink with space\x00"
	entries, err := ParseTree([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []schema.TreeEntry{
		{Path: "src/main.go", BlobID: "aaaa"},
		{Path: "link with space", BlobID: "cccc"},
	}, entries)

	_, err = ParseTree([]byte("garbage\x00"))
	assert.Error(t, err)
}

func TestParseBlamePorcelain(t *testing.T) {
	porcelain := strings.Join([]string{
		shaA + " 1 1 2",
		"author Ada",
		"author-mail <ada@example.com>",
		"author-time 1512531224",
		"summary first",
		"filename a.txt",
		"\tline one",
		shaA + " 2 2",
		"\tline two",
		shaB + " 3 3 1",
		"author Bob",
		"author-mail <bob@example.com>",
		"summary second",
		"previous " + shaA + " a.txt",
		"filename a.txt",
		"\t\tindented",
		shaA + " 4 4 1",
		"\tline four",
	}, "\n") + "\n"

	hunks, err := ParseBlamePorcelain(strings.NewReader(porcelain))
	require.NoError(t, err)
	require.Len(t, hunks, 3)
	assert.Equal(t, schema.BlameHunk{CommitID: shaA, Author: "Ada <ada@example.com>", Lines: []string{"line one", "line two"}}, hunks[0])
	assert.Equal(t, schema.BlameHunk{CommitID: shaB, Author: "Bob <bob@example.com>", Lines: []string{"\tindented"}}, hunks[1])
	assert.Equal(t, "Ada <ada@example.com>", hunks[2].Author)
}

func TestParseBlamePorcelainEmpty(t *testing.T) {
	hunks, err := ParseBlamePorcelain(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, hunks)

	_, err = ParseBlamePorcelain(strings.NewReader("\torphan line\n"))
	assert.Error(t, err)
}

func TestParseRawDiff(t *testing.T) {
	raw := ":000000 100644 0000 aaaa A\x00new.go\x00" +
		":100644 000000 bbbb 0000 D\x00old.go\x00" +
		":100644 100644 cccc dddd M\x00main.go\x00" +
		":100644 120000 eeee ffff T\x00link\x00" +
		":100644 100644 1111 2222 R087\x00from.go\x00to.go\x00" +
		":100644 100644 3333 4444 C100\x00orig.go\x00copy.go\x00"

	cs, err := ParseRawDiff([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []string{"new.go", "copy.go"}, cs.Added)
	assert.Equal(t, []string{"old.go"}, cs.Deleted)
	assert.Equal(t, []schema.PathPair{{From: "main.go", To: "main.go"}, {From: "link", To: "link"}}, cs.Modified)
	assert.Equal(t, []schema.PathPair{{From: "from.go", To: "to.go"}}, cs.Renamed)
}

func TestParseRawDiffTruncated(t *testing.T) {
	_, err := ParseRawDiff([]byte(":100644 100644 1111 2222 R087\x00from.go"))
	assert.Error(t, err)
}

func TestParseNumstat(t *testing.T) {
	raw := "3\t1\tmain.go\x00" +
		"-\t-\timage.png\x00" +
		"0\t2\t\x00from.go\x00to.go\x00" +
		"10\t0\tnew.go\x00"

	entries, err := ParseNumstat([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []schema.NumstatEntry{
		{Added: 3, Deleted: 1, Path: "main.go"},
		{Binary: true, Path: "image.png"},
		{Added: 0, Deleted: 2, Path: "to.go"},
		{Added: 10, Deleted: 0, Path: "new.go"},
	}, entries)
}
