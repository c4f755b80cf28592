// Package stylepack holds the curated style reference catalog. Each pack
// carries 15 reference paintings with the best five first, so the five image
// tier is a plain prefix truncation. Paths, labels and prompts are parallel
// lists aligned by index.
package stylepack

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pack ids map to the marketing style selector.
const (
	IDMasters            = 13
	IDImpressionColor    = 14
	IDModernAbstract     = 15
	IDAncientWorlds      = 16
	IDEvolutionPortraits = 17
	IDRoyaltyPortraits   = 18
)

// Label captions one result image in status pages and the ready email.
type Label struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Pack is one curated set of reference paintings.
type Pack struct {
	ID       int
	Name     string
	RefPaths []string
	Labels   []Label
	Prompts  []string
}

// Refs returns the first count reference paths. The best five lead each list,
// so smaller tiers keep the strongest references.
func (p *Pack) Refs(count int) []string {
	if count <= 0 || count >= len(p.RefPaths) {
		return p.RefPaths
	}
	return p.RefPaths[:count]
}

// LabelsFor returns captions for the first n results.
func (p *Pack) LabelsFor(n int) []Label {
	if n <= 0 {
		return nil
	}
	if n > len(p.Labels) {
		n = len(p.Labels)
	}
	return p.Labels[:n]
}

// ByID looks up a pack. The second return is false for unknown ids.
func ByID(id int) (*Pack, bool) {
	p, ok := packs[id]
	return p, ok
}

// All returns every pack in catalog order.
func All() []*Pack {
	out := make([]*Pack, 0, len(order))
	for _, id := range order {
		out = append(out, packs[id])
	}
	return out
}

// Valid reports whether id names a known pack.
func Valid(id int) bool {
	_, ok := packs[id]
	return ok
}

// ArtisticSuffix is appended to prompts when the order asks for the artistic
// portrait mode instead of the default realistic one.
const ArtisticSuffix = " Make the result strongly artistic and painterly. Emphasize visible brushwork, " +
	"bold color choices, and the expressive character of the original painting style. " +
	"The person should look like they were painted by the original artist, integrated " +
	"into the artistic style rather than photorealistically rendered on top of it. " +
	"Take full artistic liberties to make the portrait feel authentically part of this " +
	"artistic tradition—do not simply apply a filter, but truly render them as a " +
	"subject the artist would have painted."

const brushworkPhrase = " CRITICAL: Replicate the exact brushwork, stroke direction, paint texture, and color palette " +
	"of the original painting. Use visible brushstrokes matching the painting's technique—impasto " +
	"where thick, smooth blending where soft. Match the original's color temperature and palette. " +
	"The result must look like an actual oil painting with authentic brush marks and surface quality. "

const fallbackPrompt = "in the style of classical portrait painting." + brushworkPhrase + "Preserve the subject's face and identity."

// Reference filenames carry a 1-based index: masters-01.jpg is prompt 1.
var (
	refIndexStrict = regexp.MustCompile(`(?i)/styles/([^/]+)/([a-z0-9-]+)-(\d{2})\.(?:jpg|jpeg|png|webp)`)
	refIndexLoose  = regexp.MustCompile(`(?i)/([a-z0-9-]+)-(\d{2})\.(?:jpg|jpeg|png|webp)`)
)

// PromptForRef resolves a reference image URL to the detailed style prompt for
// the painting it shows. Unparseable or out of range references fall back to a
// generic portrait prompt rather than failing the unit.
func PromptForRef(styleID int, refURL string) string {
	idx := refIndex(refURL)
	if idx == 0 {
		return fallbackPrompt
	}
	p, ok := packs[styleID]
	if !ok || idx > len(p.Prompts) {
		return fallbackPrompt
	}
	base := p.Prompts[idx-1]
	// Prompts end with ". Preserve the subject's ...", splice the brushwork
	// demand just before it.
	return strings.Replace(base, ". Preserve", "."+brushworkPhrase+"Preserve", 1)
}

func refIndex(refURL string) int {
	m := refIndexStrict.FindStringSubmatch(refURL)
	var digits string
	if m != nil && m[1] == m[2] {
		digits = m[3]
	} else if m = refIndexLoose.FindStringSubmatch(refURL); m != nil {
		digits = m[2]
	}
	if digits == "" {
		return 0
	}
	idx, err := strconv.Atoi(digits)
	if err != nil || idx < 1 {
		return 0
	}
	return idx
}

func refs(dir string, nn ...string) []string {
	out := make([]string, len(nn))
	for i, n := range nn {
		ext := "jpg"
		if strings.Contains(n, ".") {
			parts := strings.SplitN(n, ".", 2)
			n, ext = parts[0], parts[1]
		}
		out[i] = fmt.Sprintf("/static/landing/styles/%s/%s-%s.%s", dir, dir, n, ext)
	}
	return out
}

var order = []int{
	IDMasters,
	IDImpressionColor,
	IDModernAbstract,
	IDAncientWorlds,
	IDEvolutionPortraits,
	IDRoyaltyPortraits,
}

var packs = map[int]*Pack{
	IDMasters: {
		ID:   IDMasters,
		Name: "Masters",
		// Best 5 first, then the remaining 10 in filename order.
		RefPaths: refs("masters",
			"02", "04", "15", "01", "13",
			"03", "05", "06", "07", "08", "09", "10", "11", "12", "14"),
		Labels: []Label{
			{"Mona Lisa", "Leonardo da Vinci"},
			{"Strigătul", "Edvard Munch"},
			{"Persistența memoriei", "Salvador Dalí"},
			{"Crearea lui Adam", "Michelangelo"},
			{"Flori de floarea-soarelui", "Vincent van Gogh"},
			{"Compoziție cu grile", "Piet Mondrian"},
			{"3 Mai 1808", "Francisco Goya"},
			{"Judith și Holoferne", "Caravaggio"},
			{"Străjirea de noapte", "Rembrandt van Rijn"},
			{"Las Meninas", "Diego Velázquez"},
			{"Stilul clarobscur", "Rembrandt van Rijn"},
			{"Compoziția VIII", "Wassily Kandinsky"},
			{"Impresie, răsărit de soare", "Claude Monet"},
			{"Pranzul la barcă", "Pierre-Auguste Renoir"},
			{"Domnișoarele din Avignon", "Pablo Picasso"},
		},
		Prompts: []string{
			"in the style of Leonardo da Vinci's Mona Lisa: sfumato—soft, blended strokes with no hard edges, muted earth palette (umber, ochre, olive green), warm golden-brown skin tones, hazy atmospheric background. Preserve the subject's face and identity.",
			"in the style of Edvard Munch's The Scream: swirling, wavy brushstrokes in sky, orange and yellow undulating sky, blue-green water, distorted perspective, expressionist anxiety. Preserve the subject's face and identity.",
			"in the style of Salvador Dalí's The Persistence of Memory: smooth, meticulous brushwork, soft melting forms, warm desert palette (sand, blue sky), surrealist dreamscape. Preserve the subject's face and identity.",
			"in the style of Michelangelo's The Creation of Adam: fresco technique with soft, blended brushwork, warm flesh tones (peach, terracotta), cool blue-grey background, idealized Renaissance anatomy, divine touch gesture. Preserve the subject's face, identity, and likeness.",
			"in the style of Vincent van Gogh's Sunflowers: thick impasto brushstrokes in visible directions, vibrant yellows and ochres, green stems, textured paint surface, post-impressionist. Preserve the subject's face and identity.",
			"in the style of Piet Mondrian's geometric abstraction: flat, hard-edge color blocks, primary palette (red, yellow, blue) on white, black grid lines, no brush texture—clean geometric planes. Preserve the subject's face and likeness.",
			"in the style of Francisco Goya's The Third of May 1808: dramatic chiaroscuro, dark browns and blacks, stark white shirt, warm lantern light, loose brushwork for crowd, tight detail on central figure. Preserve the subject's face and identity.",
			"in the style of Caravaggio's Judith Beheading Holofernes: tenebrist lighting—deep black shadows, single light source, rich red fabric, creamy flesh tones, precise brushwork on faces. Preserve the subject's face and likeness.",
			"in the style of Rembrandt's The Night Watch: Dutch Golden Age chiaroscuro, warm amber and browns, golden highlights on faces, deep shadows, visible brushwork, group portrait composition. Preserve the subject's face and identity.",
			"in the style of Diego Velázquez's Las Meninas: Spanish Baroque, layered brushwork, warm greys and browns, cream and gold fabrics, complex mirror composition, court portrait. Preserve the subject's face and likeness.",
			"in the style of Rembrandt's chiaroscuro portraits: thick impasto in lit areas, smooth blending in shadows, warm amber and umber palette, deep black backgrounds, visible brush marks on skin. Preserve the subject's face and identity.",
			"in the style of Wassily Kandinsky's Composition VIII: flat geometric shapes, primary colors (red, blue, yellow) plus black and white, crisp edges, abstract circles and lines, no realistic texture. Preserve the subject's face and likeness.",
			"in the style of Claude Monet's Impression, Sunrise: short, broken brushstrokes, orange and pink sunrise, blue-grey harbor, soft hazy atmosphere, loose impressionist technique. Preserve the subject's face and identity.",
			"in the style of Pierre-Auguste Renoir's Luncheon of the Boating Party: soft, blended impressionist strokes, warm skin tones, white and cream fabrics, dappled sunlight, vibrant blues and greens. Preserve the subject's face and likeness.",
			"in the style of Pablo Picasso's Les Demoiselles d'Avignon: angular geometric planes, ochre and pink palette, African mask influence, fragmented cubist forms, bold outlines. Preserve the subject's face and likeness.",
		},
	},
	IDImpressionColor: {
		ID:   IDImpressionColor,
		Name: "Impression & Color",
		RefPaths: refs("impression-color",
			"13", "02", "01", "08", "11",
			"03", "04", "05", "06", "07", "09", "10", "12", "14", "15"),
		Labels: []Label{
			{"Noapte înstelată", "Vincent van Gogh"},
			{"Nufări", "Claude Monet"},
			{"Noapte înstelată (stradă)", "Vincent van Gogh"},
			{"Irisi", "Vincent van Gogh"},
			{"Balul de la Moulin de la Galette", "Pierre-Auguste Renoir"},
			{"Clasa de balet", "Edgar Degas"},
			{"D'où venons-nous...", "Paul Gauguin"},
			{"Femeie cu perdeau", "Claude Monet"},
			{"Podul japonez", "Claude Monet"},
			{"Impresie, răsărit de soare", "Claude Monet"},
			{"Muntele Sainte-Victoire", "Paul Cézanne"},
			{"Pranzul la barcă", "Pierre-Auguste Renoir"},
			{"Leagănul", "Pierre-Auguste Renoir"},
			{"Terasa cafenelei noaptea", "Vincent van Gogh"},
			{"Flori de floarea-soarelui", "Vincent van Gogh"},
		},
		Prompts: []string{
			"in the style of Vincent van Gogh's Starry Night: thick swirling impasto strokes, deep cobalt blue sky, bright yellow and orange stars, swirling cypress in dark green, visible brush texture throughout. Preserve the subject's face and identity.",
			"in the style of Claude Monet's Water Lilies: soft, broken brushstrokes, pastel greens and pinks, lavender reflections on water, dappled light, no hard edges. Preserve the subject's face and likeness.",
			"in the style of Vincent van Gogh's night city scenes: short thick brushstrokes, warm yellows and oranges for street lamps, deep blue night sky, cobblestone texture. Preserve the subject's face and identity.",
			"in the style of Vincent van Gogh's Irises: thick directional brushstrokes, vibrant blues and purples, green foliage, yellow accents, expressive texture. Preserve the subject's face and likeness.",
			"in the style of Pierre-Auguste Renoir's Bal du moulin de la Galette: impressionist dappled light, warm skin tones, blue and white dresses, outdoor cafe. Preserve the subject's face and identity.",
			"in the style of Edgar Degas's ballet class: soft pastel brushwork, peach and cream tones, tutus in white and pink, rehearsal studio atmosphere. Preserve the subject's face and identity.",
			"in the style of Paul Gauguin's Where Do We Come From: flat color blocks, Tahitian palette (rich greens, oranges, golds), bold outlines, simplified forms. Preserve the subject's face and likeness.",
			"in the style of Claude Monet's Woman with a Parasol: loose impressionist strokes, sky blue and white, soft greens, dappled sunlight, flowing dress. Preserve the subject's face and identity.",
			"in the style of Claude Monet's Japanese Bridge: wisteria purples and greens, arched bridge, water lily pond, soft blended strokes. Preserve the subject's face and likeness.",
			"in the style of Claude Monet's Impression, Sunrise: short strokes, orange and pink sun, blue-grey harbor, hazy atmosphere. Preserve the subject's face and identity.",
			"in the style of Paul Cézanne's Mont Sainte-Victoire: structured brushwork, geometric planes, ochre and blue palette, post-impressionist. Preserve the subject's face and identity.",
			"in the style of Pierre-Auguste Renoir's Luncheon of the Boating Party: soft blended strokes, warm skin tones, white and cream, dappled sunlight. Preserve the subject's face and likeness.",
			"in the style of Pierre-Auguste Renoir's The Swing: soft forest greens, dappled light, woman in white dress. Preserve the subject's face and likeness.",
			"in the style of Vincent van Gogh's Café Terrace at Night: bright yellow awning, starry blue sky, warm orange cafe glow, cobblestone, thick brushstrokes. Preserve the subject's face and likeness.",
			"in the style of Vincent van Gogh's Sunflowers: thick impasto brushstrokes, vibrant yellows and ochres, green stems, textured paint. Preserve the subject's face and identity.",
		},
	},
	IDModernAbstract: {
		ID:   IDModernAbstract,
		Name: "Modern & Abstract",
		RefPaths: refs("modern-abstract",
			"09", "12", "03", "02", "15",
			"01", "04", "05", "06", "07", "08", "10", "11", "13.png", "14"),
		Labels: []Label{
			{"The Scream", "Edvard Munch"},
			{"The Persistence of Memory", "Salvador Dalí"},
			{"Convergence", "Jackson Pollock"},
			{"Orange and Yellow", "Mark Rothko"},
			{"Les Demoiselles d'Avignon", "Pablo Picasso"},
			{"Composition VIII", "Wassily Kandinsky"},
			{"Black Square", "Kazimir Malevich"},
			{"Broadway Boogie Woogie", "Piet Mondrian"},
			{"Woman I", "Willem de Kooning"},
			{"Street, Dresden", "Ernst Ludwig Kirchner"},
			{"Blue Horse I", "Franz Marc"},
			{"The Lovers", "René Magritte"},
			{"The Elephants", "Salvador Dalí"},
			{"Man with a Guitar", "Georges Braque"},
			{"Girl with a Mandolin", "Pablo Picasso"},
		},
		Prompts: []string{
			"in the style of Edvard Munch's The Scream: swirling orange and yellow sky, blue water, expressionist distortion. Preserve the subject's face and identity.",
			"in the style of Salvador Dalí's Persistence of Memory: smooth melting forms, warm desert palette, surrealist. Preserve the subject's face and likeness.",
			"in the style of Jackson Pollock's drip painting: splattered and dripped paint lines, black and white with color accents, energetic web, abstract expressionist. Preserve the subject's face and identity.",
			"in the style of Mark Rothko's color fields: large blocks of color, soft blurred edges, orange and yellow or warm tones, contemplative. Preserve the subject's face and likeness.",
			"in the style of Pablo Picasso's Les Demoiselles d'Avignon: angular geometric planes, ochre and pink, proto-cubist. Preserve the subject's face and identity.",
			"in the style of Wassily Kandinsky's Composition VIII: flat geometric shapes, primary colors (red, blue, yellow) plus black, crisp edges, circles and abstract forms. Preserve the subject's face and identity.",
			"in the style of Kazimir Malevich's Black Square: suprematist, geometric shapes, black on white, bold contrast, minimal. Preserve the subject's face and likeness.",
			"in the style of Piet Mondrian's Broadway Boogie Woogie: grid of primary colors, yellow, red, blue squares, black lines, geometric. Preserve the subject's face and identity.",
			"in the style of Willem de Kooning's Woman I: aggressive brushwork, flesh pinks and yellows, distorted forms, abstract expressionist. Preserve the subject's face and likeness.",
			"in the style of Ernst Ludwig Kirchner's Street Dresden: angular brushstrokes, bold pink and purple, yellow and green, German expressionist urban. Preserve the subject's face and identity.",
			"in the style of Franz Marc's Blue Horse I: bold blue animal form, expressionist, geometric simplification. Preserve the subject's face and likeness.",
			"in the style of René Magritte's The Lovers: smooth surrealist brushwork, cloth draped over faces, mysterious. Preserve the subject's face and likeness.",
			"in the style of Salvador Dalí's The Elephants: surrealist, elongated legs, dreamlike desert, meticulous detail. Preserve the subject's face and identity.",
			"in the style of Georges Braque's Cubism: fragmented geometric planes, muted browns and greys, analytical cubist. Preserve the subject's face and identity.",
			"in the style of Pablo Picasso's Girl with a Mandolin: cubist geometric planes, ochre and brown palette, fragmented forms. Preserve the subject's face and likeness.",
		},
	},
	IDAncientWorlds: {
		ID:   IDAncientWorlds,
		Name: "Ancient Worlds",
		RefPaths: refs("ancient-worlds",
			"11", "01", "08", "05", "13",
			"02", "03", "04", "06", "07", "09", "10", "12", "14", "15"),
		Labels: []Label{
			{"Fayum Mummy Portraits", "Roman Egypt"},
			{"Nebamun Hunting in the Marshes", "Ancient Egypt"},
			{"Alexander Mosaic", "Rome"},
			{"Achilles and Ajax Playing Dice Amphora", "Greece"},
			{"Ishtar Gate Reliefs", "Babylon"},
			{"Akhenaten and Nefertiti with their Children", "Egypt (Amarna)"},
			{"Book of the Dead of Hunefer", "Egypt"},
			{"Tomb of Ramesses I Wall Paintings", "Egypt"},
			{"The Berlin Painter Amphora", "Greece"},
			{"The Francois Vase", "Greece"},
			{"Villa of Livia Garden Room", "Rome"},
			{"Pompeii Fresco of Bacchus", "Rome"},
			{"Standard of Ur", "Mesopotamia"},
			{"Ajanta Cave Paintings", "India"},
			{"Han Dynasty Silk Paintings", "Ancient China"},
		},
		Prompts: []string{
			"in the style of Fayum mummy portraits: encaustic wax, Roman Egypt, realistic faces, warm skin tones. Preserve the subject's face and identity.",
			"in the style of Ancient Egyptian tomb painting: flat figures in profile, warm earth tones (ochre, terracotta), black outlines, hieroglyphic aesthetic. Preserve the subject's face and identity.",
			"in the style of Roman Alexander Mosaic: tessellated stone, battle scene, warm earth tones. Preserve the subject's face and likeness.",
			"in the style of Greek black-figure pottery: black figures on red clay, mythological scenes, amphora form. Preserve the subject's face and identity.",
			"in the style of Babylonian Ishtar Gate: blue glaze tiles, lion relief, turquoise and gold. Preserve the subject's face and identity.",
			"in the style of Amarna period Egyptian art: elongated forms, warm gold and blue, sun disk motifs, naturalistic. Preserve the subject's face and likeness.",
			"in the style of Egyptian Book of the Dead: papyrus cream background, flat figures, red and black ink, symbolic imagery. Preserve the subject's face and identity.",
			"in the style of Egyptian tomb wall paintings: Ramesside period, warm ochre and blue, ceremonial scenes. Preserve the subject's face and likeness.",
			"in the style of Greek red-figure pottery: red figures on black, elegant line work, classical. Preserve the subject's face and likeness.",
			"in the style of Greek Francois Vase: black-figure, narrative friezes, terracotta. Preserve the subject's face and identity.",
			"in the style of Roman Villa of Livia fresco: garden room, lush green foliage, naturalistic, warm stone. Preserve the subject's face and identity.",
			"in the style of Pompeii fresco: Bacchus, Roman wall painting, warm red and ochre. Preserve the subject's face and likeness.",
			"in the style of Mesopotamian Standard of Ur: lapis lazuli blue, gold, mosaic panels. Preserve the subject's face and likeness.",
			"in the style of Ajanta cave paintings: Indian Buddhist, flowing lines, rich reds and greens. Preserve the subject's face and likeness.",
			"in the style of Han Dynasty silk paintings: delicate brushwork, muted earth tones, flowing. Preserve the subject's face and identity.",
		},
	},
	IDEvolutionPortraits: {
		ID:   IDEvolutionPortraits,
		Name: "Evolution of Portraits",
		RefPaths: refs("evolution-portraits",
			"08", "05", "15", "14", "11",
			"01", "02", "03", "04.png", "06", "07", "09", "10", "12", "13"),
		Labels: []Label{
			{"Girl with a Pearl Earring", "Johannes Vermeer"},
			{"Mona Lisa", "Leonardo da Vinci"},
			{"Marilyn Diptych", "Andy Warhol"},
			{"Self-Portrait with Thorn Necklace and Hummingbird", "Frida Kahlo"},
			{"Self-Portrait with Bandaged Ear", "Vincent van Gogh"},
			{"Fayum Mummy Portraits", "Roman Egypt"},
			{"Nefertari in the Tomb of Nefertari", "Egypt"},
			{"Portrait of a Young Woman", "Medieval"},
			{"Christ Pantocrator", "Byzantine"},
			{"Portrait of Baldassare Castiglione", "Raphael"},
			{"Self-Portrait", "Albrecht Dürer"},
			{"Self-Portrait with Two Circles", "Rembrandt"},
			{"Portrait of Madame X", "John Singer Sargent"},
			{"Les Demoiselles d'Avignon", "Pablo Picasso"},
			{"Portrait of Dora Maar", "Pablo Picasso"},
		},
		Prompts: []string{
			"in the style of Johannes Vermeer's Girl with a Pearl Earring: soft diffused light, pearl earring, blue and yellow turban. Preserve the subject's face and likeness.",
			"in the style of Leonardo da Vinci's Mona Lisa: sfumato soft blending, muted earth tones, enigmatic smile. Preserve the subject's face and identity.",
			"in the style of Andy Warhol's Marilyn: Pop Art screen print, bold pink and yellow, repeated image. Preserve the subject's face and identity.",
			"in the style of Frida Kahlo's self-portrait: thorn necklace, Mexican folk colors, symbolic. Preserve the subject's face and likeness.",
			"in the style of Vincent van Gogh's self-portrait: bandaged ear, thick directional brushstrokes, greens and ochres. Preserve the subject's face and identity.",
			"in the style of Fayum mummy portraits: encaustic wax, Roman Egypt, realistic faces, warm skin tones, dark eyes. Preserve the subject's face and identity.",
			"in the style of Egyptian tomb of Nefertari: warm ochre and blue, flat figures, hieroglyphic aesthetic. Preserve the subject's face and likeness.",
			"in the style of Medieval portrait: flat iconic style, gold leaf background, rich blues and reds. Preserve the subject's face and identity.",
			"in the style of Byzantine Christ Pantocrator: gold background, solemn face, dark robes, iconic. Preserve the subject's face and likeness.",
			"in the style of Raphael's portrait: Renaissance soft modeling, warm skin, dark background. Preserve the subject's face and likeness.",
			"in the style of Albrecht Dürer's self-portrait: Northern Renaissance, meticulous detail, fur collar. Preserve the subject's face and identity.",
			"in the style of Rembrandt's self-portrait: chiaroscuro, warm amber and brown, thick brushwork in light. Preserve the subject's face and identity.",
			"in the style of John Singer Sargent's Madame X: elegant black dress, pale skin, dramatic pose. Preserve the subject's face and likeness.",
			"in the style of Pablo Picasso's Les Demoiselles: proto-cubist angular planes, ochre and pink. Preserve the subject's face and likeness.",
			"in the style of Pablo Picasso's portrait of Dora Maar: cubist fragmented planes, muted palette. Preserve the subject's face and identity.",
		},
	},
	IDRoyaltyPortraits: {
		ID:   IDRoyaltyPortraits,
		Name: "Royalty & Power",
		RefPaths: refs("royalty-portraits",
			"01", "03", "12", "02", "09",
			"04", "05", "06", "07", "08", "10", "11", "13", "14", "15"),
		Labels: []Label{
			{"Napoleon Crossing the Alps", "Jacques-Louis David"},
			{"Portrait of Henry VIII", "Hans Holbein the Younger"},
			{"Portrait of Emperor Rudolf II as Vertumnus", "Giuseppe Arcimboldo"},
			{"Portrait of Louis XIV", "Hyacinthe Rigaud"},
			{"The Blue Boy", "Thomas Gainsborough"},
			{"Queen Elizabeth I Armada Portrait", "George Gower"},
			{"Equestrian Portrait of Charles I", "Anthony van Dyck"},
			{"Portrait of Pope Innocent X", "Diego Velázquez"},
			{"Philip IV in Brown and Silver", "Diego Velázquez"},
			{"Portrait of Madame de Pompadour", "François Boucher"},
			{"Portrait of the Duke of Wellington", "Francisco Goya"},
			{"Self-Portrait as a Nobleman", "Lorenzo Lippi"},
			{"Emperor Qianlong in Court Dress", "Giuseppe Castiglione"},
			{"Shah Jahan on a Terrace", "Mughal School"},
			{"Portrait of Empress Catherine II", "Fyodor Rokotov"},
		},
		Prompts: []string{
			"in the style of Jacques-Louis David's Napoleon Crossing the Alps: neoclassical, heroic equestrian, red cape, grey horse, dramatic sky. Preserve the subject's face and identity.",
			"in the style of Hans Holbein's Henry VIII: Tudor portrait, rich red and gold fabrics, imposing. Preserve the subject's face and identity.",
			"in the style of Giuseppe Arcimboldo's Vertumnus: composite portrait, fruits and vegetables, autumn palette. Preserve the subject's face and likeness.",
			"in the style of Hyacinthe Rigaud's Louis XIV: baroque, royal blue and gold, ermine, grand pose. Preserve the subject's face and likeness.",
			"in the style of Thomas Gainsborough's Blue Boy: blue satin costume, aristocratic, 18th century. Preserve the subject's face and identity.",
			"in the style of Elizabethan Armada portrait: jeweled, pearl necklace, black dress, royal. Preserve the subject's face and likeness.",
			"in the style of Anthony van Dyck's equestrian portrait: baroque, noble pose, rich fabrics. Preserve the subject's face and identity.",
			"in the style of Diego Velázquez's Pope Innocent X: baroque chiaroscuro, red silk, dramatic lighting. Preserve the subject's face and likeness.",
			"in the style of Velázquez's Philip IV: Spanish court, brown and silver, rich fabrics. Preserve the subject's face and identity.",
			"in the style of François Boucher's Madame de Pompadour: rococo, pastel pink and blue, decorative. Preserve the subject's face and likeness.",
			"in the style of Francisco Goya's portrait: Spanish master, dark brown tones, psychological. Preserve the subject's face and likeness.",
			"in the style of Lorenzo Lippi's nobleman portrait: baroque, aristocratic, dark background. Preserve the subject's face and identity.",
			"in the style of Giuseppe Castiglione's Qianlong: Chinese-European fusion, imperial yellow, detailed. Preserve the subject's face and identity.",
			"in the style of Mughal miniature Shah Jahan: jewel tones, intricate detail, lapis and gold. Preserve the subject's face and likeness.",
			"in the style of Fyodor Rokotov's Catherine II: Russian imperial, elegant, soft brushwork. Preserve the subject's face and identity.",
		},
	},
}
