package analytics

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// knownRegions ciudades y estados reconocidos como ancla; la localidad es el token anterior.
var knownRegions = map[string]struct{}{}

func init() {
	for _, r := range []string{
		// ciudades
		"mumbai", "delhi", "new delhi", "bangalore", "bengaluru", "hyderabad", "chennai",
		"kolkata", "pune", "ahmedabad", "jaipur", "surat", "lucknow", "kanpur", "nagpur",
		"indore", "thane", "bhopal", "visakhapatnam", "patna", "vadodara", "ghaziabad",
		"ludhiana", "agra", "nashik", "noida", "gurgaon", "gurugram", "chandigarh", "kochi",
		"coimbatore", "mysore", "mysuru", "goa", "gangtok", "siliguri", "darjeeling",
		"guwahati", "shillong", "imphal", "dehradun", "bhubaneswar", "ranchi", "raipur",
		"thiruvananthapuram", "srinagar", "jammu",
		// estados y territorios
		"maharashtra", "karnataka", "tamil nadu", "telangana", "kerala", "gujarat",
		"rajasthan", "uttar pradesh", "madhya pradesh", "west bengal", "bihar", "punjab",
		"haryana", "andhra pradesh", "odisha", "assam", "jharkhand", "uttarakhand",
		"himachal pradesh", "sikkim", "meghalaya", "manipur", "nagaland", "mizoram",
		"tripura", "arunachal pradesh", "chhattisgarh", "jammu and kashmir",
	} {
		knownRegions[r] = struct{}{}
	}
}

// FallbackShare distribución ilustrativa usada cuando no se puede extraer ninguna ubicación.
type FallbackShare struct {
	Name    string
	Percent int
}

// FallbackDistribution reparto fijo provisional; no representa datos reales.
var FallbackDistribution = []FallbackShare{
	{Name: "Mumbai", Percent: 30},
	{Name: "Delhi", Percent: 25},
	{Name: "Bangalore", Percent: 20},
	{Name: "Pune", Percent: 15},
	{Name: "Hyderabad", Percent: 10},
}

// LocationCount ubicación y cantidad de menciones.
type LocationCount struct {
	Name       string
	Count      int
	Percentage int
}

// normalize minúsculas, sin acentos y con espacios colapsados. Conserva los dígitos:
// "Sector 18" es una localidad distinta de "Sector 62".
// Los transformers de x/text guardan estado; se crean por llamada.
func normalize(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// regionKey descarta las palabras numéricas (códigos PIN) antes de buscar la región:
// "mumbai 400053" → "mumbai".
func regionKey(token string) string {
	words := strings.Fields(token)
	kept := words[:0]
	for _, w := range words {
		if strings.IndexFunc(w, unicode.IsLetter) >= 0 {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func hasLetter(token string) bool {
	return strings.IndexFunc(token, unicode.IsLetter) >= 0
}

func splitTokens(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '|' || r == ';' || r == '/'
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if n := normalize(t); n != "" {
			tokens = append(tokens, n)
		}
	}
	return tokens
}

func isRegion(token string) bool {
	_, ok := knownRegions[regionKey(token)]
	return ok
}

// ExtractLocality devuelve el token anterior al primer nombre de región conocido,
// saltando los tokens sin letras.
// "Flat 4, Andheri West, Mumbai 400053" → "Andheri West"; "Sector 18, Noida" → "Sector 18".
func ExtractLocality(text string) (string, bool) {
	tokens := splitTokens(text)
	for i := 1; i < len(tokens); i++ {
		if !isRegion(tokens[i]) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if hasLetter(tokens[j]) {
				return cases.Title(language.English).String(tokens[j]), true
			}
		}
		return "", false
	}
	return "", false
}

// TopLocations cuenta localidades extraíbles y devuelve las `limit` más frecuentes.
// Orden: cantidad descendente, luego nombre.
func TopLocations(texts []string, limit int) []LocationCount {
	freq := make(map[string]int)
	total := 0
	for _, t := range texts {
		if loc, ok := ExtractLocality(t); ok {
			freq[loc]++
			total++
		}
	}
	out := make([]LocationCount, 0, len(freq))
	for name, n := range freq {
		out = append(out, LocationCount{Name: name, Count: n, Percentage: roundedPercent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FallbackLocations reparte total según FallbackDistribution. Sin relaciones devuelve lista vacía.
func FallbackLocations(total int) []LocationCount {
	if total <= 0 {
		return []LocationCount{}
	}
	out := make([]LocationCount, 0, len(FallbackDistribution))
	for _, s := range FallbackDistribution {
		out = append(out, LocationCount{
			Name:       s.Name,
			Count:      int(math.Round(float64(total) * float64(s.Percent) / 100)),
			Percentage: s.Percent,
		})
	}
	return out
}
