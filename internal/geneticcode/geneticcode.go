// Package geneticcode provides NCBI genetic code tables and codon translation.
package geneticcode

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Default is the vertebrate mitochondrial code.
const Default = 2

// Stop is the residue emitted for a stop codon.
const Stop = '*'

// Unknown is the residue emitted for a codon that cannot be resolved.
const Unknown = 'X'

var (
	// ErrUnknownTable is returned by Lookup for an ID with no table.
	ErrUnknownTable = errors.New("unknown genetic code")
	// ErrInvalidCodon is returned for codons with non-nucleotide symbols.
	ErrInvalidCodon = errors.New("invalid codon")
)

// Residues per codon in TCAG order: first base varies slowest.
//
//	1  TTTTTTTTTTTTTTTTCCCCCCCCCCCCCCCCAAAAAAAAAAAAAAAAGGGGGGGGGGGGGGGG
//	2  TTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGG
//	3  TCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAG
var ncbieaa = map[int]string{
	1:  "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	2:  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG",
	3:  "FFLLSSSSYY**CCWWTTTTPPPPHHQQRRRRIIMMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	4:  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	5:  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSSSVVVVAAAADDEEGGGG",
	6:  "FFLLSSSSYYQQCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	9:  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	10: "FFLLSSSSYY**CCCWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	11: "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	12: "FFLLSSSSYY**CC*WLLLSPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	13: "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSGGVVVVAAAADDEEGGGG",
	14: "FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	15: "FFLLSSSSYY*QCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	16: "FFLLSSSSYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	21: "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	22: "FFLLSS*SYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	23: "FF*LSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	24: "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
	25: "FFLLSSSSYY**CCGWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	26: "FFLLSSSSYY**CC*WLLLAPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	27: "FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	28: "FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	29: "FFLLSSSSYYYYCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	30: "FFLLSSSSYYEECC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	31: "FFLLSSSSYYEECCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	32: "FFLLSSSSYY*WCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	33: "FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
}

var names = map[int]string{
	1:  "Standard",
	2:  "Vertebrate Mitochondrial",
	3:  "Yeast Mitochondrial",
	4:  "Mold Mitochondrial; Protozoan Mitochondrial; Coelenterate Mitochondrial; Mycoplasma; Spiroplasma",
	5:  "Invertebrate Mitochondrial",
	6:  "Ciliate Nuclear; Dasycladacean Nuclear; Hexamita Nuclear",
	9:  "Echinoderm Mitochondrial; Flatworm Mitochondrial",
	10: "Euplotid Nuclear",
	11: "Bacterial, Archaeal and Plant Plastid",
	12: "Alternative Yeast Nuclear",
	13: "Ascidian Mitochondrial",
	14: "Alternative Flatworm Mitochondrial",
	15: "Blepharisma Macronuclear",
	16: "Chlorophycean Mitochondrial",
	21: "Trematode Mitochondrial",
	22: "Scenedesmus obliquus Mitochondrial",
	23: "Thraustochytrium Mitochondrial",
	24: "Rhabdopleuridae Mitochondrial",
	25: "Candidate Division SR1 and Gracilibacteria",
	26: "Pachysolen tannophilus Nuclear",
	27: "Karyorelict Nuclear",
	28: "Condylostoma Nuclear",
	29: "Mesodinium Nuclear",
	30: "Peritrich Nuclear",
	31: "Blastocrithidia Nuclear",
	32: "Balanophoraceae Plastid",
	33: "Cephalodiscidae Mitochondrial",
}

// tcag holds the bases in table order.
const tcag = "TCAG"

// ambiguity maps each IUPAC nucleotide code to the bases it stands for.
var ambiguity = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT", 'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG", 'N': "ACGT",
}

// ambiguousResidues maps sorted residue pairs to their IUPAC protein code.
var ambiguousResidues = map[string]byte{
	"DN": 'B',
	"EQ": 'Z',
	"IL": 'J',
}

// Table is an immutable genetic code. It is safe for concurrent use.
type Table struct {
	ID       int
	Name     string
	residues string
}

var tables = func() map[int]*Table {
	m := make(map[int]*Table, len(ncbieaa))
	for id, res := range ncbieaa {
		m[id] = &Table{ID: id, Name: names[id], residues: res}
	}
	return m
}()

// Lookup returns the table with the given NCBI ID.
func Lookup(id int) (*Table, error) {
	t, ok := tables[id]
	if !ok {
		return nil, fmt.Errorf("table %d: %w", id, ErrUnknownTable)
	}
	return t, nil
}

// MustLookup is like Lookup but panics on an unknown ID.
func MustLookup(id int) *Table {
	t, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return t
}

// IDs returns all known table IDs in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func baseIndex(b byte) int {
	return strings.IndexByte(tcag, b)
}

// residue returns the residue for an unambiguous uppercase codon.
func (t *Table) residue(b1, b2, b3 byte) byte {
	return t.residues[baseIndex(b1)*16+baseIndex(b2)*4+baseIndex(b3)]
}

// TranslateCodon translates a single codon.
// Lowercase and U are accepted. An ambiguous codon resolves to a residue when
// every expansion agrees, to B (D/N), Z (E/Q) or J (I/L) when the expansions
// are exactly such a pair, and to 'X' otherwise. Symbols outside the IUPAC
// nucleotide codes and codons whose length is not 3 return ErrInvalidCodon.
func (t *Table) TranslateCodon(codon string) (byte, error) {
	if len(codon) != 3 {
		return 0, fmt.Errorf("codon %q: %w", codon, ErrInvalidCodon)
	}
	var sets [3]string
	for i := 0; i < 3; i++ {
		s, ok := ambiguity[upper(codon[i])]
		if !ok {
			return 0, fmt.Errorf("codon %q: %w", codon, ErrInvalidCodon)
		}
		sets[i] = s
	}

	var buf [4]byte
	seen := buf[:0]
	for i := 0; i < len(sets[0]); i++ {
		for j := 0; j < len(sets[1]); j++ {
			for k := 0; k < len(sets[2]); k++ {
				r := t.residue(sets[0][i], sets[1][j], sets[2][k])
				if bytes.IndexByte(seen, r) < 0 {
					seen = append(seen, r)
				}
			}
		}
	}

	if len(seen) == 1 {
		return seen[0], nil
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	if aa, ok := ambiguousResidues[string(seen)]; ok {
		return aa, nil
	}
	return Unknown, nil
}

// Translate translates a nucleotide sequence codon by codon, keeping stops.
// A trailing partial codon is dropped. The first invalid codon stops the
// translation with an error wrapping ErrInvalidCodon.
func (t *Table) Translate(seq string) (string, error) {
	return t.translate(seq, false)
}

// Lenient returns a translator over t that emits 'X' for invalid codons
// instead of failing.
func (t *Table) Lenient() Lenient {
	return Lenient{table: t}
}

// Lenient is a Table that never fails to translate.
type Lenient struct {
	table *Table
}

// Translate is like Table.Translate but maps invalid codons to 'X'.
func (l Lenient) Translate(seq string) (string, error) {
	return l.table.translate(seq, true)
}

func (t *Table) translate(seq string, lenient bool) (string, error) {
	n := (len(seq) / 3) * 3

	var result strings.Builder
	result.Grow(n / 3)

	for i := 0; i < n; i += 3 {
		aa, err := t.TranslateCodon(seq[i : i+3])
		if err != nil {
			if !lenient {
				return "", fmt.Errorf("offset %d: %w", i, err)
			}
			aa = Unknown
		}
		result.WriteByte(aa)
	}

	return result.String(), nil
}

// StopCodons returns the unambiguous stop codons of the table in TCAG order.
func (t *Table) StopCodons() []string {
	var stops []string
	for i := 0; i < len(t.residues); i++ {
		if t.residues[i] == Stop {
			stops = append(stops, string([]byte{tcag[i/16], tcag[(i/4)%4], tcag[i%4]}))
		}
	}
	return stops
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
