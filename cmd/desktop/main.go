package main

import (
	_ "embed"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
	"minicc/pkg/grid"
	"minicc/pkg/tac"
	"minicc/pkg/utils"
)

//go:embed assets/sample.c
var sampleSource string

const (
	screenWidth  = 640
	screenHeight = 480

	tabCols   = 4
	tabWidth  = 160
	tabHeight = 16
	bodyTop   = 2*tabHeight + 8
	lineH     = 14
	margin    = 8
)

var (
	bodyFace  = text.NewGoXFace(basicfont.Face7x13)
	bodyColor = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	errColor  = color.RGBA{0xff, 0x60, 0x60, 0xff}
)

// page is one stage's output as displayed in the viewer.
type page struct {
	title string
	lines []string
	err   bool
}

// buildPages runs the pipeline over src and lays out one page per stage.
// A failing stage ends the list with an error page.
func buildPages(src string, opts compiler.Options) []page {
	pages := []page{{title: "Source", lines: strings.Split(strings.TrimRight(src, "\n"), "\n")}}

	res, err := compiler.Run(src, opts)
	if err != nil {
		return append(pages, page{title: "Error", lines: strings.Split(err.Error(), "\n"), err: true})
	}

	tokens := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		tokens[i] = fmt.Sprintf("%3d:%-3d %s", tok.Line, tok.Col, tok)
	}
	pages = append(pages,
		page{title: "Tokens", lines: tokens},
		page{title: "AST", lines: astLines(res.AST)},
		page{title: "Declarations", lines: strings.Split(strings.TrimRight(res.Symbols.String(), "\n"), "\n")},
		page{title: "TAC", lines: tac.Format(res.TAC)},
		page{title: "Optimized", lines: tac.Format(res.Optimized)},
		page{title: "Assembly", lines: strings.Split(res.Assembly, "\n")},
	)

	result, err := cpu.Execute(res.Optimized)
	if err != nil {
		return append(pages, page{title: "Run", lines: []string{err.Error()}, err: true})
	}
	return append(pages, page{title: "Run", lines: []string{fmt.Sprintf("main returned %d", result)}})
}

func astLines(fn *compiler.FunctionDecl) []string {
	lines := []string{fmt.Sprintf("Function %s", fn.Name)}
	for _, s := range fn.Body {
		lines = append(lines, "  "+s.String())
	}
	return lines
}

type Game struct {
	path    string
	opts    compiler.Options
	pages   []page
	current int
	top     int
}

func newGame(path, src string, opts compiler.Options) *Game {
	return &Game{path: path, opts: opts, pages: buildPages(src, opts)}
}

func (g *Game) visibleRows() int {
	return (screenHeight - bodyTop - margin) / lineH
}

func (g *Game) selectPage(i int) {
	n := len(g.pages)
	g.current = ((i % n) + n) % n
	g.top = 0
}

func (g *Game) scroll(delta int) {
	g.top += delta
	start, _ := grid.Window(len(g.pages[g.current].lines), g.top, g.visibleRows())
	g.top = start
}

func (g *Game) reload() {
	if g.path == "" {
		return
	}
	src, err := utils.ReadSource(g.path)
	if err != nil {
		g.pages = []page{{title: "Error", lines: []string{err.Error()}, err: true}}
		g.selectPage(0)
		return
	}
	title := g.pages[g.current].title
	g.pages = buildPages(src, g.opts)
	g.selectPage(0)
	for i, p := range g.pages {
		if p.title == title {
			g.selectPage(i)
		}
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.selectPage(g.current + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.selectPage(g.current - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.scroll(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.scroll(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.scroll(g.visibleRows())
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.scroll(-g.visibleRows())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload()
	}
	return nil
}

func (g *Game) drawTabs(screen *ebiten.Image) {
	for i, p := range g.pages {
		x, y := grid.GetGridCoords(i, tabCols)
		label := " " + p.title
		if i == g.current {
			label = "[" + p.title + "]"
		}
		ebitenutil.DebugPrintAt(screen, label, x*tabWidth, y*tabHeight)
	}
}

func (g *Game) drawBody(screen *ebiten.Image) {
	p := g.pages[g.current]
	start, end := grid.Window(len(p.lines), g.top, g.visibleRows())

	clr := bodyColor
	if p.err {
		clr = errColor
	}
	for row, line := range p.lines[start:end] {
		op := &text.DrawOptions{}
		op.GeoM.Translate(margin, float64(bodyTop+row*lineH))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, bodyFace, op)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawTabs(screen)
	g.drawBody(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	path := ""
	src := sampleSource
	if len(os.Args) > 1 {
		path = os.Args[1]
		var err error
		if src, err = utils.ReadSource(path); err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("minicc stages")

	game := newGame(path, src, compiler.Options{})
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
