package sutra

import (
	"fmt"
	"strings"

	"github.com/agbru/vedicmath/internal/numeric"
)

// Sutra identifies an algorithm. Standard is straight arithmetic.
type Sutra uint8

const (
	Standard Sutra = iota
	Ekadhikena
	Nikhilam
	Antyayordasake
	Ekanyunena
	Urdhva
	Yaavadunam
	Paravartya
	Dhvajanka
	NikhilamDiv
	Puranapuranabhyam
	Anurupyena
	Vestanam
	Sankalana
	Shunyam

	// Count is the number of identities, Standard included.
	Count = int(Shunyam) + 1
)

var names = [Count]string{
	"standard",
	"ekadhikena",
	"nikhilam",
	"antyayordasake",
	"ekanyunena",
	"urdhva",
	"yaavadunam",
	"paravartya",
	"dhvajanka",
	"nikhilam_div",
	"puranapuranabhyam",
	"anurupyena",
	"vestanam",
	"sankalana",
	"shunyam",
}

// aliases maps the long Sanskrit names to their identities.
var aliases = map[string]Sutra{
	"ekadhikena_purvena":           Ekadhikena,
	"nikhilam_navatashcaramam":     Nikhilam,
	"ekanyunena_purvena":           Ekanyunena,
	"urdhva_tiryagbhyam":           Urdhva,
	"paravartya_yojayet":           Paravartya,
	"nikhilam_division":            NikhilamDiv,
	"sankalana_vyavakalanabhyam":   Sankalana,
	"shunyam_saamyasamuccaye":      Shunyam,
	"vestanam_osculation":          Vestanam,
	"anurupyena_proportionality":   Anurupyena,
	"puranapuranabhyam_completion": Puranapuranabhyam,
}

// String returns the canonical lower-case name.
func (s Sutra) String() string {
	if int(s) < Count {
		return names[s]
	}
	return fmt.Sprintf("sutra(%d)", s)
}

// IsVedic reports whether s is a specialised kernel rather than Standard.
func (s Sutra) IsVedic() bool { return s != Standard && int(s) < Count }

// All returns every identity in declaration order.
func All() []Sutra {
	out := make([]Sutra, Count)
	for i := range out {
		out[i] = Sutra(i)
	}
	return out
}

// Parse resolves a sutra name. Matching ignores case and treats '-' and ' '
// like '_'.
func Parse(name string) (Sutra, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, n := range names {
		if n == key {
			return Sutra(i), nil
		}
	}
	if s, ok := aliases[key]; ok {
		return s, nil
	}
	return Standard, fmt.Errorf("unknown sutra %q", name)
}

// Supports reports whether s can evaluate op. Multiplicative kernels serve
// both Mul and Square; the squaring kernels only apply to Mul when both
// operands are equal. Division kernels serve both Div and Mod.
func (s Sutra) Supports(op numeric.OpKind) bool {
	switch s {
	case Standard:
		return true
	case Nikhilam, Antyayordasake, Ekanyunena, Urdhva, Anurupyena, Ekadhikena, Yaavadunam:
		return op == numeric.Mul || op == numeric.Square
	case Paravartya, Dhvajanka, NikhilamDiv:
		return op == numeric.Div || op == numeric.Mod
	case Puranapuranabhyam:
		return op == numeric.Add || op == numeric.Sub
	}
	return false
}
