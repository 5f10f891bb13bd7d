package serverconfig_test

import (
	"strings"
	"testing"

	"beammp-manager/core/errs"
	"beammp-manager/core/serverconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authoritative = serverconfig.Authoritative{
	ServerID:   "1",
	ServerName: "New",
	Port:       30900,
	AuthKey:    "abc",
	MaxPlayers: 10,
	StartMap:   "/m",
}

func reconcile(t *testing.T, content string, a serverconfig.Authoritative) (string, serverconfig.Report) {
	t.Helper()
	out, report, err := serverconfig.Reconcile(serverconfig.NewDocument([]byte(content)), a)
	require.NoError(t, err)
	return out.String(), report
}

func TestReconcile_ReplacesOnlyPortLine(t *testing.T) {
	doc := strings.Join([]string{
		"# BeamMP config. Port = 1 in a comment must survive.",
		"[General]",
		`Name = "My Server" # DO NOT UPDATE FROM HERE.`,
		"Port = 30814 # DO NOT UPDATE FROM HERE.",
		`AuthKey = "secret"`,
		`Description = "Port = 5 inside a string"`,
		"MaxPlayers = 8",
		`Map = "/levels/gridmap_v2/info.json"`,
		"",
		"[Misc]",
		"SendErrors = true",
		"",
	}, "\n")

	a := serverconfig.Authoritative{
		ServerName: "My Server",
		Port:       30900,
		AuthKey:    "secret",
		MaxPlayers: 8,
		StartMap:   "/levels/gridmap_v2/info.json",
	}
	got, report := reconcile(t, doc, a)

	before := strings.Split(doc, "\n")
	after := strings.Split(got, "\n")
	require.Len(t, after, len(before))
	for i := range before {
		if i == 3 {
			assert.Equal(t, "Port = 30900 # DO NOT UPDATE FROM HERE.", after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d changed", i)
	}
	assert.True(t, report.Changed)
	assert.ElementsMatch(t, serverconfig.ManagedFields, report.Updated)
	assert.Empty(t, report.Appended)
}

func TestReconcile_AllManagedFields(t *testing.T) {
	doc := "[General] # main table\n" +
		"  Name = \"Old\" # keep\n" +
		"Port=1\n" +
		"AuthKey = ''\n" +
		"MaxPlayers = \"8\"\n" +
		"Map =\n" +
		"LogChat = true\n" +
		"\n" +
		"[Misc]\n" +
		"Port = 1\n" +
		"Name = \"misc\"\n"

	got, report := reconcile(t, doc, authoritative)

	want := "[General] # main table\n" +
		"  Name = \"New\" # keep\n" +
		"Port= 30900\n" +
		"AuthKey = \"abc\"\n" +
		"MaxPlayers = 10\n" +
		"Map = \"/m\"\n" +
		"LogChat = true\n" +
		"\n" +
		"[Misc]\n" +
		"Port = 1\n" +
		"Name = \"misc\"\n"
	assert.Equal(t, want, got)
	assert.Len(t, report.Updated, 5)
}

func TestReconcile_AppendsMissingIntoGeneral(t *testing.T) {
	doc := "[General]\nName = \"x\"\n\n[Misc]\nSendErrors = true\n"

	got, report := reconcile(t, doc, authoritative)

	want := "[General]\n" +
		"Name = \"New\"\n" +
		"Port = 30900\n" +
		"AuthKey = \"abc\"\n" +
		"MaxPlayers = 10\n" +
		"Map = \"/m\"\n" +
		"\n" +
		"[Misc]\n" +
		"SendErrors = true\n"
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"Name"}, report.Updated)
	assert.Equal(t, []string{"Port", "AuthKey", "MaxPlayers", "Map"}, report.Appended)
}

func TestReconcile_AppendsGeneralSection(t *testing.T) {
	got, report := reconcile(t, "# comment\nfoo = 1", authoritative)

	want := "# comment\n" +
		"foo = 1\n" +
		"\n" +
		"[General]\n" +
		"Name = \"New\"\n" +
		"Port = 30900\n" +
		"AuthKey = \"abc\"\n" +
		"MaxPlayers = 10\n" +
		"Map = \"/m\""
	assert.Equal(t, want, got)
	assert.Equal(t, serverconfig.ManagedFields, report.Appended)
}

func TestReconcile_EmptyDocument(t *testing.T) {
	got, _ := reconcile(t, "", authoritative)
	assert.Equal(t, "[General]\nName = \"New\"\nPort = 30900\nAuthKey = \"abc\"\nMaxPlayers = 10\nMap = \"/m\"\n", got)
}

func TestReconcile_PreservesCRLF(t *testing.T) {
	got, _ := reconcile(t, "[General]\r\nPort = 1\r\n", authoritative)
	want := "[General]\r\n" +
		"Port = 30900\r\n" +
		"Name = \"New\"\r\n" +
		"AuthKey = \"abc\"\r\n" +
		"MaxPlayers = 10\r\n" +
		"Map = \"/m\"\r\n"
	assert.Equal(t, want, got)
}

func TestReconcile_MultiLineString(t *testing.T) {
	doc := "[General]\n" +
		"Name = \"\"\"line one\n" +
		"line two\"\"\" # trailing\n" +
		"Port = 1\n" +
		"AuthKey = \"k\"\n" +
		"MaxPlayers = 2\n" +
		"Map = '''/a'''\n"

	got, _ := reconcile(t, doc, authoritative)
	want := "[General]\n" +
		"Name = \"New\" # trailing\n" +
		"Port = 30900\n" +
		"AuthKey = \"abc\"\n" +
		"MaxPlayers = 10\n" +
		"Map = \"/m\"\n"
	assert.Equal(t, want, got)
}

func TestReconcile_DuplicateAssignments(t *testing.T) {
	got, report := reconcile(t, "[General]\nPort = 1\nPort = 2\nName = \"\"\nAuthKey = \"\"\nMaxPlayers = 1\nMap = \"\"\n", authoritative)
	assert.Equal(t, 2, strings.Count(got, "Port = 30900\n"))
	assert.Equal(t, 1, countOf(report.Updated, "Port"))
}

func TestReconcile_EscapesStrings(t *testing.T) {
	a := authoritative
	a.ServerName = `He said "hi" \ bye` + "\t"
	got, _ := reconcile(t, "[General]\nName = \"\"\n", a)
	assert.Contains(t, got, `Name = "He said \"hi\" \\ bye\t"`)

	settings, err := serverconfig.Inspect(serverconfig.NewDocument([]byte(got)))
	require.NoError(t, err)
	assert.Equal(t, a.ServerName, settings.Name)
}

func TestReconcile_Idempotent(t *testing.T) {
	docs := map[string]string{
		"Template":       serverconfig.MaterializeDefault(authoritative).String(),
		"Empty":          "",
		"NoGeneral":      "[Misc]\nSendErrors = true",
		"CRLF":           "[General]\r\nName = \"a\"\r\nPort = 3\r\n",
		"NoTrailingEOL":  "[General]\nPort = 1",
		"MultiLine":      "[General]\nName = \"\"\"a\nb\"\"\"\n",
		"Unterminated":   "[General]\nName = \"\"\"a\nb\n",
		"NoSpace":        "[General]\nPort=\n",
		"CommentsOnly":   "# Port = 1\n# Name = \"x\"\n",
		"Duplicates":     "[General]\nMap = \"a\"\nMap = \"b\"\n",
		"QuotedSection":  "[\"General\"]\nPort = 1\n",
		"IndentedHeader": "  [General]\n\tPort = 5 # five\n",
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			once, _ := reconcile(t, doc, authoritative)
			twice, report := reconcile(t, once, authoritative)
			assert.Equal(t, once, twice)
			assert.False(t, report.Changed)
			assert.Empty(t, report.Appended)
		})
	}
}

func TestReconcile_PreservesUnmanagedLines(t *testing.T) {
	doc := serverconfig.MaterializeDefault(serverconfig.Authoritative{ServerName: "a", Port: 1, MaxPlayers: 2, StartMap: "b"}).String()
	got, _ := reconcile(t, doc, authoritative)

	before := strings.Split(doc, "\n")
	after := strings.Split(got, "\n")
	require.Len(t, after, len(before))

	managed := func(l string) bool {
		for _, f := range serverconfig.ManagedFields {
			if strings.HasPrefix(l, f+" = ") {
				return true
			}
		}
		return false
	}
	for i := range before {
		if !managed(before[i]) {
			assert.Equal(t, before[i], after[i])
		}
	}
}

func TestReconcile_UnmanagedMultiLineString(t *testing.T) {
	doc := "[General]\n" +
		"Description = \"\"\"\nPort = 1\n[General]\nName = \"inner\"\n\"\"\"\n" +
		"Notes = '''\nMaxPlayers = 99\n'''\n" +
		"Name = \"x\"\nPort = 30814\nAuthKey = \"\"\nMaxPlayers = 12\nMap = \"/old\"\n"
	got, report := reconcile(t, doc, authoritative)

	assert.Contains(t, got, "Description = \"\"\"\nPort = 1\n[General]\nName = \"inner\"\n\"\"\"\n")
	assert.Contains(t, got, "Notes = '''\nMaxPlayers = 99\n'''\n")
	assert.Contains(t, got, "\nPort = 30900\n")
	assert.Contains(t, got, "\nMaxPlayers = 10\n")
	assert.Equal(t, serverconfig.ManagedFields, report.Updated)
	assert.Empty(t, report.Appended)
}

func TestReconcile_UnmanagedMultiLineStringHidesField(t *testing.T) {
	doc := "[General]\nDescription = \"\"\"\nPort = 1\n\"\"\"\nName = \"x\"\n"
	got, report := reconcile(t, doc, authoritative)

	assert.True(t, strings.HasPrefix(got, "[General]\nDescription = \"\"\"\nPort = 1\n\"\"\"\nName = \"New\"\n"))
	assert.Contains(t, report.Appended, "Port")
	assert.NotContains(t, report.Updated, "Port")
}

func TestReconcile_Malformed(t *testing.T) {
	tests := map[string][]byte{
		"InvalidUTF8": {0xff, 0xfe, 0x00, 0x01},
		"NulByte":     []byte("[General]\nName = \"a\"\x00\n"),
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := serverconfig.Reconcile(serverconfig.NewDocument(content), authoritative)
			assert.Equal(t, errs.KindMalformedConfig, errs.KindOf(err))
		})
	}
}

func TestMissingFields(t *testing.T) {
	missing, err := serverconfig.MissingFields(serverconfig.NewDocument([]byte("[General]\nName = \"a\"\n# Port = 1\n[Misc]\nMap = \"x\"\n")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Port", "AuthKey", "MaxPlayers", "Map"}, missing)

	missing, err = serverconfig.MissingFields(serverconfig.NewDocument([]byte("[General]\nDescription = '''\nPort = 1\nAuthKey = \"k\"\n'''\nName = \"a\"\nMaxPlayers = 1\nMap = \"m\"\n")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Port", "AuthKey"}, missing)

	missing, err = serverconfig.MissingFields(serverconfig.MaterializeDefault(authoritative))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMaterializeDefault(t *testing.T) {
	doc := serverconfig.MaterializeDefault(authoritative)

	settings, err := serverconfig.Inspect(doc)
	require.NoError(t, err)
	assert.Equal(t, serverconfig.Settings{
		Name:       "New",
		Port:       30900,
		AuthKey:    "abc",
		MaxPlayers: 10,
		Map:        "/m",
	}, settings)
	assert.True(t, settings.HasAuthKey())

	text := doc.String()
	assert.True(t, strings.HasPrefix(text, "# This is the BeamMP-Server config file.\n"))
	assert.Contains(t, text, "\n[Misc]\n")
	assert.Contains(t, text, "Tags = \"Freeroam\"\n")
	assert.True(t, strings.HasSuffix(text, "SendErrors = true\n"))

	_, report, err := serverconfig.Reconcile(doc, authoritative)
	require.NoError(t, err)
	assert.False(t, report.Changed)
}

func TestInspect_Invalid(t *testing.T) {
	_, err := serverconfig.Inspect(serverconfig.NewDocument([]byte("[General]\nPort = \"not a number\"\n")))
	assert.Equal(t, errs.KindMalformedConfig, errs.KindOf(err))

	_, err = serverconfig.Inspect(serverconfig.NewDocument([]byte("[General\n")))
	assert.Equal(t, errs.KindMalformedConfig, errs.KindOf(err))
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}
