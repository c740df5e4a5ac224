package theme

// builtins holds the nine required named themes (spec §4.6) with concrete RGB values matching
// each theme's well-known published palette.
var builtins = map[string]Theme{
	"asciinema": {
		Name: "asciinema", Background: [3]uint8{0, 0, 0}, Foreground: [3]uint8{204, 204, 204}, Cursor: [3]uint8{204, 204, 204},
		Palette: [16][3]uint8{
			{0, 0, 0}, {221, 61, 45}, {57, 181, 74}, {255, 199, 6},
			{4, 91, 191}, {216, 44, 189}, {4, 167, 201}, {204, 204, 204},
			{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
			{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
		},
	},
	"dracula": {
		Name: "dracula", Background: [3]uint8{40, 42, 54}, Foreground: [3]uint8{248, 248, 242}, Cursor: [3]uint8{248, 248, 242},
		Palette: [16][3]uint8{
			{33, 34, 44}, {255, 85, 85}, {80, 250, 123}, {241, 250, 140},
			{189, 147, 249}, {255, 121, 198}, {139, 233, 253}, {248, 248, 242},
			{98, 114, 164}, {255, 110, 110}, {105, 255, 148}, {255, 255, 165},
			{214, 172, 255}, {255, 146, 223}, {164, 255, 255}, {255, 255, 255},
		},
	},
	"monokai": {
		Name: "monokai", Background: [3]uint8{39, 40, 34}, Foreground: [3]uint8{248, 248, 242}, Cursor: [3]uint8{248, 248, 242},
		Palette: [16][3]uint8{
			{39, 40, 34}, {249, 38, 114}, {166, 226, 46}, {244, 191, 117},
			{102, 217, 239}, {174, 129, 255}, {161, 239, 228}, {248, 248, 242},
			{117, 113, 94}, {249, 38, 114}, {166, 226, 46}, {244, 191, 117},
			{102, 217, 239}, {174, 129, 255}, {161, 239, 228}, {249, 248, 245},
		},
	},
	"solarized-dark": {
		Name: "solarized-dark", Background: [3]uint8{0, 43, 54}, Foreground: [3]uint8{131, 148, 150}, Cursor: [3]uint8{131, 148, 150},
		Palette: [16][3]uint8{
			{7, 54, 66}, {220, 50, 47}, {133, 153, 0}, {181, 137, 0},
			{38, 139, 210}, {211, 54, 130}, {42, 161, 152}, {238, 232, 213},
			{0, 43, 54}, {203, 75, 22}, {88, 110, 117}, {101, 123, 131},
			{131, 148, 150}, {108, 113, 196}, {147, 161, 161}, {253, 246, 227},
		},
	},
	"solarized-light": {
		Name: "solarized-light", Background: [3]uint8{253, 246, 227}, Foreground: [3]uint8{101, 123, 131}, Cursor: [3]uint8{101, 123, 131},
		Palette: [16][3]uint8{
			{7, 54, 66}, {220, 50, 47}, {133, 153, 0}, {181, 137, 0},
			{38, 139, 210}, {211, 54, 130}, {42, 161, 152}, {238, 232, 213},
			{0, 43, 54}, {203, 75, 22}, {88, 110, 117}, {101, 123, 131},
			{131, 148, 150}, {108, 113, 196}, {147, 161, 161}, {253, 246, 227},
		},
	},
	"nord": {
		Name: "nord", Background: [3]uint8{46, 52, 64}, Foreground: [3]uint8{216, 222, 233}, Cursor: [3]uint8{216, 222, 233},
		Palette: [16][3]uint8{
			{59, 66, 82}, {191, 97, 106}, {163, 190, 140}, {235, 203, 139},
			{129, 161, 193}, {180, 142, 173}, {136, 192, 208}, {229, 233, 240},
			{76, 86, 106}, {191, 97, 106}, {163, 190, 140}, {235, 203, 139},
			{129, 161, 193}, {180, 142, 173}, {143, 188, 187}, {236, 239, 244},
		},
	},
	"one-dark": {
		Name: "one-dark", Background: [3]uint8{40, 44, 52}, Foreground: [3]uint8{171, 178, 191}, Cursor: [3]uint8{171, 178, 191},
		Palette: [16][3]uint8{
			{40, 44, 52}, {224, 108, 117}, {152, 195, 121}, {229, 192, 123},
			{97, 175, 239}, {198, 120, 221}, {86, 182, 194}, {171, 178, 191},
			{92, 99, 112}, {224, 108, 117}, {152, 195, 121}, {229, 192, 123},
			{97, 175, 239}, {198, 120, 221}, {86, 182, 194}, {255, 255, 255},
		},
	},
	"github-dark": {
		Name: "github-dark", Background: [3]uint8{13, 17, 23}, Foreground: [3]uint8{201, 209, 217}, Cursor: [3]uint8{201, 209, 217},
		Palette: [16][3]uint8{
			{1, 4, 9}, {255, 123, 114}, {126, 231, 135}, {247, 213, 120},
			{165, 214, 255}, {255, 146, 212}, {118, 231, 255}, {201, 209, 217},
			{110, 118, 129}, {255, 166, 158}, {126, 231, 135}, {247, 213, 120},
			{165, 214, 255}, {255, 146, 212}, {118, 231, 255}, {255, 255, 255},
		},
	},
	"tokyo-night": {
		Name: "tokyo-night", Background: [3]uint8{26, 27, 38}, Foreground: [3]uint8{169, 177, 214}, Cursor: [3]uint8{169, 177, 214},
		Palette: [16][3]uint8{
			{21, 22, 30}, {247, 118, 142}, {158, 206, 106}, {224, 175, 104},
			{122, 162, 247}, {187, 154, 247}, {125, 207, 255}, {169, 177, 214},
			{65, 72, 104}, {247, 118, 142}, {158, 206, 106}, {224, 175, 104},
			{122, 162, 247}, {187, 154, 247}, {125, 207, 255}, {192, 202, 245},
		},
	},
}

// Default is the fallback theme name used when a recording's header carries none, and when
// ByName is given an unrecognized name (spec §4.6).
const Default = "asciinema"

// ByName returns the named built-in theme, falling back to the Default theme for unknown
// names rather than erroring (spec §4.6's explicit fallback rule).
func ByName(name string) Theme {
	if t, ok := builtins[name]; ok {
		return t
	}
	return builtins[Default]
}

// Names returns the built-in theme names, asciinema first.
func Names() []string {
	names := []string{Default}
	for n := range builtins {
		if n != Default {
			names = append(names, n)
		}
	}
	return names
}
