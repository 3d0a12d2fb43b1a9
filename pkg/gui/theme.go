package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockfall/pkg/mino"
)

// Alpha of the colors drawn over the board. Terminals have no alpha
// channel, so these are blended into the underlying cell color.
const (
	GhostAlpha   = 0x33 / 255.0
	OverlayAlpha = 0x88 / 255.0
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name       string
	Background tcell.Color
	Ghost      tcell.Color
	Overlay    tcell.Color
	Text       tcell.Color
	Border     tcell.Color
	Score      tcell.Color
	Garbage    tcell.Color
	Blocks     [mino.ShapeCount]tcell.Color
}

// ThemeHex is the JSON form of a Theme
type ThemeHex struct {
	Name       string                  `json:"name"`
	Background string                  `json:"background"`
	Ghost      string                  `json:"ghost"`
	Overlay    string                  `json:"overlay"`
	Text       string                  `json:"text"`
	Border     string                  `json:"border"`
	Score      string                  `json:"score"`
	Garbage    string                  `json:"garbage"`
	Blocks     [mino.ShapeCount]string `json:"blocks"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	h := ThemeHex{
		Name:       t.Name,
		Background: fmtHex(t.Background.Hex()),
		Ghost:      fmtHex(t.Ghost.Hex()),
		Overlay:    fmtHex(t.Overlay.Hex()),
		Text:       fmtHex(t.Text.Hex()),
		Border:     fmtHex(t.Border.Hex()),
		Score:      fmtHex(t.Score.Hex()),
		Garbage:    fmtHex(t.Garbage.Hex()),
	}
	for i, c := range t.Blocks {
		h.Blocks[i] = fmtHex(c.Hex())
	}

	return h
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	th := Theme{
		Name:       t.Name,
		Background: tcell.GetColor(t.Background),
		Ghost:      tcell.GetColor(t.Ghost),
		Overlay:    tcell.GetColor(t.Overlay),
		Text:       tcell.GetColor(t.Text),
		Border:     tcell.GetColor(t.Border),
		Score:      tcell.GetColor(t.Score),
		Garbage:    tcell.GetColor(t.Garbage),
	}
	for i, c := range t.Blocks {
		th.Blocks[i] = tcell.GetColor(c)
	}

	return th
}

// BlockColor returns the color of a locked cell or active piece block.
func (t Theme) BlockColor(b mino.Block) tcell.Color {
	if b == mino.BlockGarbage {
		return t.Garbage
	} else if i := b.ColorIndex(); i >= 0 {
		return t.Blocks[i]
	}

	return t.Background
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LoadTheme resolves want against the built-in themes and, when file is
// set, the themes in that JSON file. File themes override built-ins.
func LoadTheme(want string, file string) (Theme, error) {
	var themes []ThemeHex

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %w", err)
		}
		if err := json.Unmarshal(data, &themes); err != nil {
			return Theme{}, fmt.Errorf("theme: failed to decode %s: %w", file, err)
		}
	}

	for _, t := range Themes {
		themes = append(themes, t.Hex())
	}

	return ImportThemes(want, themes)
}

// ThemeClassic is the default theme
var ThemeClassic = Theme{
	Name:       "classic",
	Background: tcell.NewHexColor(0x333333),
	Ghost:      tcell.NewHexColor(0xffffff),
	Overlay:    tcell.NewHexColor(0x000000),
	Text:       tcell.NewHexColor(0xffffff),
	Border:     tcell.NewHexColor(0x808080),
	Score:      tcell.NewHexColor(0xffffff),
	Garbage:    tcell.NewHexColor(0x999999),
	Blocks: [mino.ShapeCount]tcell.Color{
		mino.ShapeSquare: tcell.NewHexColor(0xffff00),
		mino.ShapeT:      tcell.NewHexColor(0xff00ff),
		mino.ShapeLine:   tcell.NewHexColor(0x00ffff),
		mino.ShapeL:      tcell.NewHexColor(0xff8800),
		mino.ShapeJL:     tcell.NewHexColor(0x0000ff),
		mino.ShapeS:      tcell.NewHexColor(0xff0000),
		mino.ShapeZ:      tcell.NewHexColor(0x00ff00),
	},
}

// ThemeBasic sticks to the 256 color palette.
var ThemeBasic = Theme{
	Name:       "basic",
	Background: tcell.Color236,
	Ghost:      tcell.Color231,
	Overlay:    tcell.Color16,
	Text:       tcell.Color231,
	Border:     tcell.Color244,
	Score:      tcell.Color252,
	Garbage:    tcell.Color246,
	Blocks: [mino.ShapeCount]tcell.Color{
		mino.ShapeSquare: tcell.Color226,
		mino.ShapeT:      tcell.Color201,
		mino.ShapeLine:   tcell.Color51,
		mino.ShapeL:      tcell.Color208,
		mino.ShapeJL:     tcell.Color21,
		mino.ShapeS:      tcell.Color196,
		mino.ShapeZ:      tcell.Color46,
	},
}

var Themes = []Theme{ThemeClassic, ThemeBasic}

// blend mixes over into base with the given alpha. Colors without an RGB
// value are not blended.
func blend(base tcell.Color, over tcell.Color, alpha float64) tcell.Color {
	if base.Hex() == -1 || over.Hex() == -1 {
		return over
	}

	br, bg, bb := base.RGB()
	or, og, ob := over.RGB()
	mix := func(b, o int32) int32 {
		return int32(float64(b)*(1-alpha) + float64(o)*alpha + 0.5)
	}

	return tcell.NewRGBColor(mix(br, or), mix(bg, og), mix(bb, ob))
}
