// Command passage works with scripture passages: it formats, combines,
// tests and encodes verse ranges given as OSIS references.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/FocuswithJustin/passage/core/builder"
	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/osis"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/core/sqlite"
	"github.com/FocuswithJustin/passage/internal/fingerprint"
	"github.com/FocuswithJustin/passage/internal/logging"
	"github.com/FocuswithJustin/passage/internal/validation"
)

const version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Catalog   string `help:"Catalog file (.json, .yaml or .xml, optionally .xz); takes precedence over --catalog-db" type:"path" env:"PASSAGE_CATALOG"`
	CatalogDB string `name:"catalog-db" help:"SQLite catalog database" type:"path" env:"PASSAGE_CATALOG_DB"`
	CatalogID string `name:"catalog-id" help:"Catalog to load from --catalog-db" default:"KJV" env:"PASSAGE_CATALOG_ID"`
	LogLevel  string `name:"log-level" help:"Log level" default:"warn" enum:"debug,info,warn,error" env:"PASSAGE_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format" default:"text" enum:"text,json" env:"PASSAGE_LOG_FORMAT"`
}

// CLI defines the command-line interface for passage.
type CLI struct {
	Globals

	Reference ReferenceCmd `cmd:"" help:"Format OSIS references as a human-readable reference"`
	Combine   CombineCmd   `cmd:"" help:"Combine references of one book into a single range"`
	Contains  ContainsCmd  `cmd:"" help:"Check whether a verse lies inside a range"`
	Chapters  ChaptersCmd  `cmd:"" help:"Report full chapters and consecutive chapter runs"`
	Encode    EncodeCmd    `cmd:"" help:"Encode references as a collection record with its fingerprint"`
	Decode    DecodeCmd    `cmd:"" help:"Decode a collection record file"`
	Catalogs  CatalogGroup `cmd:"" name:"catalog" help:"Book catalog operations"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// CatalogGroup contains catalog database operations.
type CatalogGroup struct {
	Import CatalogImportCmd `cmd:"" help:"Import a catalog file into --catalog-db"`
	List   CatalogListCmd   `cmd:"" help:"List available catalogs"`
}

// loadCatalog returns the catalog selected by the global flags.
func (g *Globals) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	switch {
	case g.Catalog != "":
		if err := validation.ValidatePath(g.Catalog); err != nil {
			return nil, err
		}
		c, err := catalog.LoadFile(g.Catalog)
		if err != nil {
			return nil, err
		}
		logging.CatalogLoaded(c.ID(), "file", c.Len(), "path", g.Catalog)
		return c, nil
	case g.CatalogDB != "":
		store, err := catalog.OpenStoreReadOnly(ctx, g.CatalogDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		c, err := store.Load(ctx, g.CatalogID)
		if err != nil {
			return nil, err
		}
		logging.CatalogLoaded(c.ID(), "database", c.Len(), "path", g.CatalogDB)
		return c, nil
	default:
		c := catalog.KJV()
		logging.CatalogLoaded(c.ID(), "builtin", c.Len())
		return c, nil
	}
}

// build parses refs into a collection over the selected catalog.
func (g *Globals) build(ctx context.Context, refs []string) (*builder.Builder, error) {
	cat, err := g.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	b := builder.New(builder.Config{Catalog: cat})
	if _, err := b.WithOSIS(strings.Join(refs, " ")); err != nil {
		return nil, err
	}
	return b, nil
}

// ReferenceCmd prints the human-readable form of a collection.
type ReferenceCmd struct {
	Refs    []string `arg:"" help:"OSIS references, e.g. Gen.1.1-3.15"`
	Exclude []string `short:"x" help:"OSIS references to exclude from the last range"`
}

func (c *ReferenceCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	b, err := g.build(ctx, c.Refs)
	if err != nil {
		return err
	}
	if len(c.Exclude) > 0 {
		if err := b.WithoutOSIS(strings.Join(c.Exclude, " ")); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, b.Build().Reference())
	return nil
}

// CombineCmd merges ranges of one book.
type CombineCmd struct {
	Refs        []string `arg:"" help:"OSIS references of a single book"`
	JSON        bool     `help:"Print the combined range as a record"`
	Fingerprint bool     `help:"Also print the fingerprint of the combined range's compact record"`
}

func (c *CombineCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	b, err := g.build(ctx, c.Refs)
	if err != nil {
		return err
	}
	combined, err := passage.Combine(b.Build().Ranges())
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(combined.ToRecord()); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, combined.Reference())
		for _, ex := range combined.Exclusions() {
			fmt.Fprintf(out, "  excluding %s\n", ex)
		}
	}

	if c.Fingerprint {
		fp, err := fingerprint.Range(combined)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "blake3 %s\nsha256 %s\n", fp.BLAKE3, fp.SHA256)
	}
	return nil
}

// ContainsCmd tests a verse against a range.
type ContainsCmd struct {
	Range string `arg:"" help:"OSIS references forming the range"`
	Verse string `arg:"" help:"OSIS verse, e.g. Gen.2.4"`
}

func (c *ContainsCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	b, err := g.build(ctx, []string{c.Range})
	if err != nil {
		return err
	}

	ref, err := osis.ParseRef(c.Verse)
	if err != nil {
		return err
	}
	if ref.IsRange() || ref.Verse == 0 {
		return errors.NewValidationf("verse", "%s is not a single verse", ref)
	}
	book, err := b.ResolveBook(builder.BookNamed(ref.Book))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, b.Build().Contains(passage.At(book, ref.Chapter, ref.Verse)))
	return nil
}

// ChaptersCmd reports chapter fullness.
type ChaptersCmd struct {
	Min  int      `help:"Required number of consecutive full chapters" default:"1"`
	Refs []string `arg:"" help:"OSIS references"`
}

func (c *ChaptersCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	b, err := g.build(ctx, c.Refs)
	if err != nil {
		return err
	}
	coll := b.Build()
	combined, err := coll.Combined()
	if err != nil {
		return err
	}

	for _, r := range combined {
		full := passage.FullChapters(r)
		labels := make([]string, len(full))
		for i, ch := range full {
			labels[i] = fmt.Sprint(ch)
		}
		if len(labels) == 0 {
			labels = []string{"none"}
		}
		fmt.Fprintf(out, "%s: full chapters %s (longest run %d)\n",
			r.Book().Name(), strings.Join(labels, ", "), passage.LongestFullChapterRun(r))
	}
	fmt.Fprintf(out, "consecutive(%d): %t\n", c.Min, coll.HasConsecutiveChapters(c.Min))
	return nil
}

// EncodeCmd prints a collection record and its fingerprint.
type EncodeCmd struct {
	Name       string   `help:"Collection name"`
	ID         string   `help:"Collection id" xor:"id"`
	GenerateID bool     `name:"generate-id" help:"Assign a random UUID as collection id" xor:"id"`
	Refs       []string `arg:"" help:"OSIS references"`
}

func (c *EncodeCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	b, err := g.build(ctx, c.Refs)
	if err != nil {
		return err
	}
	if c.Name != "" {
		b.Named(c.Name)
	}
	switch {
	case c.ID != "":
		b.Identified(c.ID)
	case c.GenerateID:
		b.GenerateID()
	}

	fp, data, err := fingerprint.Collection(b.Build())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	fmt.Fprintf(out, "blake3 %s\n", fp.BLAKE3)
	fmt.Fprintf(out, "sha256 %s\n", fp.SHA256)
	return nil
}

// DecodeCmd reads a collection record file, optionally checking it against
// the fingerprint printed by encode.
type DecodeCmd struct {
	BLAKE3 string `name:"blake3" help:"Expected BLAKE3 hash of the record file (hex)"`
	SHA256 string `name:"sha256" help:"Expected SHA-256 hash of the record file (hex)"`
	Path   string `arg:"" help:"Collection record (JSON)" type:"existingfile"`
}

func (c *DecodeCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	data, err := validation.ReadFile(c.Path, validation.MaxInputSize)
	if err != nil {
		return err
	}
	want := fingerprint.Fingerprint{
		BLAKE3: strings.ToLower(c.BLAKE3),
		SHA256: strings.ToLower(c.SHA256),
	}
	// encode hashes the record without its trailing newline.
	record := bytes.TrimSpace(data)
	if (want != fingerprint.Fingerprint{}) && !fingerprint.Verify(record, want) {
		return &errors.ValidationError{
			Field:   "fingerprint",
			Value:   c.Path,
			Message: "record does not match the expected fingerprint",
		}
	}

	logging.InfoContext(ctx, "collection_decoded", "path", c.Path, "fingerprint", fingerprint.Bytes(record).Short())

	cat, err := g.loadCatalog(ctx)
	if err != nil {
		return err
	}
	coll, err := passage.DecodeCollection(data, cat)
	if err != nil {
		return errors.Wrap(err, c.Path)
	}

	if name, ok := coll.Name(); ok {
		fmt.Fprintf(out, "name: %s\n", name)
	}
	if id, ok := coll.ID(); ok {
		fmt.Fprintf(out, "id: %s\n", id)
	}
	fmt.Fprintln(out, coll.Reference())
	return nil
}

// CatalogImportCmd stores a catalog file in the catalog database.
type CatalogImportCmd struct {
	Path string `arg:"" help:"Catalog file" type:"existingfile"`
}

func (c *CatalogImportCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	if g.CatalogDB == "" {
		return errors.NewValidation("catalog-db", "catalog import needs --catalog-db")
	}
	if err := validation.ValidatePath(c.Path); err != nil {
		return err
	}
	cat, err := catalog.LoadFile(c.Path)
	if err != nil {
		return err
	}
	store, err := catalog.OpenStore(ctx, g.CatalogDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, cat); err != nil {
		return err
	}
	logging.InfoContext(ctx, "catalog_imported", "catalog_id", cat.ID(), "path", c.Path, "db", g.CatalogDB)
	fmt.Fprintf(out, "imported %s (%d books) into %s\n", cat.ID(), cat.Len(), g.CatalogDB)
	return nil
}

// CatalogListCmd lists the built-in catalog and any stored ones.
type CatalogListCmd struct{}

func (c *CatalogListCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	fmt.Fprintf(out, "%s\t(built-in, %d books)\n", catalog.KJV().ID(), catalog.KJV().Len())
	if g.CatalogDB == "" {
		return nil
	}

	store, err := catalog.OpenStoreReadOnly(ctx, g.CatalogDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintf(out, "%s\t(%s)\n", id, g.CatalogDB)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(out, "passage %s\n", version)
	fmt.Fprintf(out, "sqlite driver: %s (%s)\n", info.DriverName, info.DriverType)
	return nil
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer, options ...kong.Option) error {
	var cli CLI
	options = append([]kong.Option{
		kong.Name("passage"),
		kong.Description("Scripture passage ranges: format, combine, test and encode"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Bind(&cli.Globals),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	}, options...)

	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLoggerTo(stderr, level, format)

	command := kctx.Command()
	ctx := logging.WithCommand(context.Background(), command)
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(); err != nil {
		logging.CommandError(command, err)
		return err
	}
	return nil
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "passage: %v\n", err)
		os.Exit(1)
	}
}
