package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/export"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/storage/kv/memory"
	"resume-builder/internal/shared/telemetry"
)

type brokenBrowser struct{}

func (brokenBrowser) Screenshot(context.Context, string, int, float64) ([]byte, error) {
	return nil, io.ErrUnexpectedEOF
}

func (brokenBrowser) PrintPDF(context.Context, string) ([]byte, error) {
	return nil, io.ErrUnexpectedEOF
}

func setupTestStore(t *testing.T) *resume.Store {
	t.Helper()
	telemetry.SetOutput(io.Discard)
	store := resume.Open(context.Background(), memory.New(), resume.Options{
		Now: func() time.Time { return time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) },
	})
	Configure(store, nil)
	t.Cleanup(func() {
		Configure(nil, nil)
		showJSON = false
		exportOutput = ""
		pdfOutput = ""
		telemetry.SetOutput(nil)
	})
	return store
}

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func executeSplit(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// redirectStdio points os.Stdout and os.Stderr at temp files for the test.
func redirectStdio(t *testing.T) (stdout, stderr *os.File) {
	t.Helper()
	dir := t.TempDir()
	var err error
	stdout, err = os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err = os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdout, stderr
	t.Cleanup(func() {
		os.Stdout, os.Stderr = origOut, origErr
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		stdout.Close()
		stderr.Close()
	})
	return stdout, stderr
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"show", "stats", "export", "import", "reset", "skill", "template", "scheme", "pdf"} {
		assert.Contains(t, names, want)
	}
}

func TestCommandsRequireStore(t *testing.T) {
	Configure(nil, nil)
	_, err := execute("show")
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestShowSummary(t *testing.T) {
	setupTestStore(t)

	out, err := execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Template:   modern (single-column)")
	assert.Contains(t, out, "Experience: 1")
}

func TestShowJSON(t *testing.T) {
	setupTestStore(t)

	out, err := execute("show", "--json")
	require.NoError(t, err)
	var doc resume.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, resume.TemplateModern, doc.Template.Name)
}

func TestDocumentOutputGoesToStdout(t *testing.T) {
	for _, args := range [][]string{{"export", "-o", "-"}, {"show", "--json"}} {
		setupTestStore(t)

		out, errOut, err := executeSplit(args...)
		require.NoError(t, err, args)
		assert.Empty(t, errOut, args)
		var doc resume.Document
		require.NoError(t, json.Unmarshal([]byte(out), &doc), args)
	}
}

func TestExecuteWritesExportToProcessStdout(t *testing.T) {
	setupTestStore(t)
	stdout, stderr := redirectStdio(t)

	rootCmd.SetArgs([]string{"export", "-o", "-"})
	require.NoError(t, Execute())

	outBytes, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	errBytes, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)

	assert.Empty(t, errBytes)
	var doc resume.Document
	require.NoError(t, json.Unmarshal(outBytes, &doc))
	assert.Equal(t, resume.TemplateModern, doc.Template.Name)
}

func TestSkillAdd(t *testing.T) {
	store := setupTestStore(t)

	out, err := execute("skill", "add", "technical", "Distributed", "Systems")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Distributed Systems" to technical (1 total)`)
	assert.Equal(t, []string{"Distributed Systems"}, store.Document().Skills.Technical)

	out, err = execute("skill", "add", "soft", "   ")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to add")
	assert.Empty(t, store.Document().Skills.Soft)
}

func TestSkillAddUnknownCategory(t *testing.T) {
	setupTestStore(t)

	_, err := execute("skill", "add", "hobbies", "Chess")
	assert.ErrorIs(t, err, resume.ErrUnknownCategory)
}

func TestSkillRemove(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.AddSkill(context.Background(), resume.SkillsLanguages, "French")
	require.NoError(t, err)

	_, err = execute("skill", "remove", "languages", "zero")
	assert.Error(t, err)

	out, err := execute("skill", "remove", "languages", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "languages now has 0 skills")
}

func TestTemplateAndScheme(t *testing.T) {
	store := setupTestStore(t)

	out, err := execute("template", "creative")
	require.NoError(t, err)
	assert.Contains(t, out, "Template set to creative (two-column)")

	out, err = execute("scheme", "warm")
	require.NoError(t, err)
	assert.Contains(t, out, "Color scheme set to Warm")
	assert.Equal(t, "#DC2626", store.Document().Colors.Primary)

	_, err = execute("template", "brutalist")
	assert.ErrorIs(t, err, resume.ErrInvalidInput)
}

func TestStats(t *testing.T) {
	setupTestStore(t)

	out, err := execute("stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Completion: 0%")
}

func TestExportImportRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.ReplaceNestedField(ctx, resume.SectionPersonal, "firstName", json.RawMessage(`"Ada"`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	out, err := execute("export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)

	_, err = execute("reset")
	require.NoError(t, err)
	assert.Equal(t, "", store.Document().Personal.FirstName)

	out, err = execute("import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported "+path)
	assert.Equal(t, "Ada", store.Document().Personal.FirstName)
}

func TestImportInvalidKeepsDocument(t *testing.T) {
	store := setupTestStore(t)
	before := store.Document()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := execute("import", path)
	require.Error(t, err)
	assert.Equal(t, "Invalid JSON format", err.Error())
	assert.Equal(t, before, store.Document())
}

func TestPDFRequiresExporter(t *testing.T) {
	setupTestStore(t)

	_, err := execute("pdf")
	assert.EqualError(t, err, "pdf exporter not configured")
}

func TestPDFFailureShowsNotice(t *testing.T) {
	store := setupTestStore(t)
	renderer, err := export.NewRenderer()
	require.NoError(t, err)
	Configure(store, export.NewService(renderer, brokenBrowser{}, time.Second))

	_, err = execute("pdf", "-o", filepath.Join(t.TempDir(), "out.pdf"))
	assert.EqualError(t, err, export.FailureNotice)
}
