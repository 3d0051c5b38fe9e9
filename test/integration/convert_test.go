package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danieljhkim/transheet/internal/config"
	"github.com/danieljhkim/transheet/internal/engine"
)

const (
	appEN = "home:\n    title: Home\n    intro: Welcome\nfooter: Bye\n"
	appCS = "home:\n    title: Domů\n    extra: Navíc\n"
	mail  = "subject: Hello\n"
)

func seedDocuments(fs *testFS) {
	fs.put("/docs/app.en.yaml", appEN)
	fs.put("/docs/app.cs.yaml", appCS)
	fs.put("/docs/mail.en.yaml", mail)
}

func TestExportImport_FullCycle(t *testing.T) {
	eng, fs, _ := setupTestEngine(t, config.Default())
	ctx := context.Background()
	seedDocuments(fs)

	exported, err := eng.Export(ctx, &engine.ExportRequest{
		DocsDir:   "/docs",
		TablePath: "/out/table.csv",
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !exported.Written {
		t.Fatal("expected table to be written")
	}
	if exported.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", exported.Rows)
	}

	want := "domain,id,cs,en\n" +
		"app,home.title,Domů,Home\n" +
		"app,home.extra,Navíc,\n" +
		"app,home.intro,,Welcome\n" +
		"app,footer,,Bye\n" +
		"mail,subject,,Hello\n"
	if got := fs.content(t, "/out/table.csv"); got != want {
		t.Errorf("table = %q, want %q", got, want)
	}

	imported, err := eng.Import(ctx, &engine.ImportRequest{
		TablePath: "/out/table.csv",
		OutDir:    "/restored",
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(imported.Applied) != 3 {
		t.Errorf("expected 3 documents written, got %d", len(imported.Applied))
	}
	if len(imported.Gated) != 1 || imported.Gated[0].Domain != "mail" || imported.Gated[0].Locale != "cs" {
		t.Errorf("expected mail/cs to be gated, got %+v", imported.Gated)
	}

	if got := fs.content(t, "/restored/app.cs.yaml"); got != appCS {
		t.Errorf("app.cs.yaml = %q, want %q", got, appCS)
	}
	if got := fs.content(t, "/restored/mail.en.yaml"); got != mail {
		t.Errorf("mail.en.yaml = %q, want %q", got, mail)
	}

	if got := fs.content(t, "/restored/app.en.yaml"); got != appEN {
		t.Errorf("app.en.yaml = %q, want %q", got, appEN)
	}
}

func TestImport_Idempotency(t *testing.T) {
	eng, fs, logs := setupTestEngine(t, config.Default())
	ctx := context.Background()
	fs.put("/t.csv", "domain,id,en,de\napp,a.b,x,y\napp,a.c,z,\n")

	req := &engine.ImportRequest{TablePath: "/t.csv", OutDir: "/lang"}

	first, err := eng.Import(ctx, req)
	if err != nil {
		t.Fatalf("First Import() error = %v", err)
	}
	writes := fs.writes

	second, err := eng.Import(ctx, req)
	if err != nil {
		t.Fatalf("Second Import() error = %v", err)
	}

	if len(second.Applied) != 0 {
		t.Errorf("expected nothing written on second import, got %d", len(second.Applied))
	}
	if len(second.Unchanged) != len(first.Applied) {
		t.Errorf("expected %d unchanged documents, got %d", len(first.Applied), len(second.Unchanged))
	}
	if fs.writes != writes {
		t.Errorf("expected no additional writes, got %d", fs.writes-writes)
	}
	if logs.FilterMessage("file unchanged").Len() != 2 {
		t.Errorf("expected 2 unchanged log entries, got %d", logs.FilterMessage("file unchanged").Len())
	}
	if second.Duration != time.Second {
		t.Errorf("expected duration of one clock step, got %v", second.Duration)
	}
}

func TestExport_XLSXRoundTrip(t *testing.T) {
	settings := config.Default()
	settings.Sheet.Name = "Strings"
	settings.Documents.Extension = "neon"
	settings.Documents.Indent = 2

	eng, fs, _ := setupTestEngine(t, settings)
	ctx := context.Background()
	fs.put("/docs/web.en.neon", "nav:\n  home: Home\n  code: \"007\"\n")
	fs.put("/docs/web.fr.neon", "nav:\n  home: Accueil\n")

	if _, err := eng.Export(ctx, &engine.ExportRequest{DocsDir: "/docs", TablePath: "/t.xlsx"}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if _, err := eng.Import(ctx, &engine.ImportRequest{TablePath: "/t.xlsx", OutDir: "/docs2"}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := fs.content(t, "/docs2/web.en.neon"); got != "nav:\n  home: Home\n  code: \"007\"\n" {
		t.Errorf("web.en.neon = %q", got)
	}
	if got := fs.content(t, "/docs2/web.fr.neon"); got != "nav:\n  home: Accueil\n" {
		t.Errorf("web.fr.neon = %q", got)
	}
}

func TestExport_TableIsDirectory(t *testing.T) {
	eng, fs, _ := setupTestEngine(t, config.Default())
	seedDocuments(fs)
	_ = fs.MkdirAll("/out/table.csv", 0755)

	result, err := eng.Export(context.Background(), &engine.ExportRequest{
		DocsDir:   "/docs",
		TablePath: "/out/table.csv",
	})
	if !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if result == nil || !result.Plan.HasConflicts() {
		t.Fatal("expected a plan with conflicts")
	}
}

func TestInspect_MissingLocales(t *testing.T) {
	eng, fs, _ := setupTestEngine(t, config.Default())
	seedDocuments(fs)

	result, err := eng.Inspect(context.Background(), &engine.InspectRequest{DocsDir: "/docs"})
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(result.Domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(result.Domains))
	}
	app, mailDomain := result.Domains[0], result.Domains[1]
	if app.IDs != 4 {
		t.Errorf("expected 4 app ids, got %d", app.IDs)
	}
	if len(mailDomain.Missing) != 1 || mailDomain.Missing[0] != "cs" {
		t.Errorf("expected mail to miss cs, got %v", mailDomain.Missing)
	}
}

func TestImport_PartialWriteReportsProgress(t *testing.T) {
	eng, fs, logs := setupTestEngine(t, config.Default())
	ctx := context.Background()
	fs.put("/t.csv", "domain,id,en,de,fr\napp,title,Home,Haus,Maison\n")

	diskFull := errors.New("no space left on device")
	fs.failOn["/lang/app.de.yaml"] = diskFull

	req := &engine.ImportRequest{TablePath: "/t.csv", OutDir: "/lang"}
	result, err := eng.Import(ctx, req)
	if !errors.Is(err, engine.ErrPartialWrite) || !errors.Is(err, diskFull) {
		t.Fatalf("expected ErrPartialWrite wrapping the write error, got %v", err)
	}
	if result == nil || len(result.Applied) != 1 || result.Applied[0].DestPath != "/lang/app.en.yaml" {
		t.Fatalf("expected only app.en.yaml to be reported as written, got %+v", result)
	}
	if _, ok := fs.files["/lang/app.fr.yaml"]; ok {
		t.Error("expected no write after the failing document")
	}
	if logs.FilterMessage("import stopped after a partial write").Len() != 1 {
		t.Error("expected the partial write to be logged")
	}

	// Running again once the fault is gone completes the rest.
	delete(fs.failOn, "/lang/app.de.yaml")
	again, err := eng.Import(ctx, req)
	if err != nil {
		t.Fatalf("Import() retry error = %v", err)
	}
	if len(again.Applied) != 2 || len(again.Unchanged) != 1 {
		t.Errorf("expected 2 written and 1 unchanged on retry, got %d and %d", len(again.Applied), len(again.Unchanged))
	}
}

func TestImport_FirstWriteFails(t *testing.T) {
	eng, fs, _ := setupTestEngine(t, config.Default())
	fs.put("/t.csv", "domain,id,en\napp,title,Home\n")
	denied := errors.New("permission denied")
	fs.failOn["/lang/app.en.yaml"] = denied

	result, err := eng.Import(context.Background(), &engine.ImportRequest{TablePath: "/t.csv", OutDir: "/lang"})
	if !errors.Is(err, denied) || errors.Is(err, engine.ErrPartialWrite) {
		t.Fatalf("expected the plain write error, got %v", err)
	}
	if result == nil || len(result.Applied) != 0 {
		t.Errorf("expected nothing reported as written, got %+v", result)
	}
}
