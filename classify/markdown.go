package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// BlockType tags one parsed markdown block
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockQuote     BlockType = "quote"
	BlockTaskList  BlockType = "tasklist"
	BlockList      BlockType = "list"
	BlockTable     BlockType = "table"
	BlockRule      BlockType = "rule"
)

// Block is one typed markdown block. Which fields are populated depends on
// the type: headings use Level+Text, code uses Language+Lines, quotes use
// Items (Indent is each line's '>' run length) with Level as the deepest
// run, lists use Items, tables use Rows.
type Block struct {
	Type     BlockType
	Level    int
	Text     string
	Language string
	Lines    []string
	Items    []ListItem
	Rows     [][]string
	Ordered  bool
}

// ListItem is a single list entry with its indent depth
type ListItem struct {
	Text    string
	Indent  int
	Checked bool
	Task    bool
}

// TOCEntry is one table-of-contents entry derived from a heading
type TOCEntry struct {
	Level int
	Text  string
	ID    string
}

var (
	headingPattern  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	fencePattern    = regexp.MustCompile("^```\\s*(\\S*)\\s*$")
	rulePattern     = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
	quotePattern    = regexp.MustCompile(`^(>+)\s?(.*)$`)
	taskPattern     = regexp.MustCompile(`^(\s*)-\s+\[([ xX])\]\s+(.*)$`)
	bulletPattern   = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedPattern  = regexp.MustCompile(`^(\s*)\d+[.)]\s+(.*)$`)
	tableRowPattern = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	separatorRow    = regexp.MustCompile(`^\s*\|?[\s:|-]+\|?\s*$`)
	slugStrip       = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapse    = regexp.MustCompile(`-{2,}`)
)

// ParseMarkdown parses content into a flat sequence of typed blocks.
// The parser is line-oriented: a plain line is one paragraph block, with no
// soft-wrap joining of adjacent lines.
func ParseMarkdown(content string) []Block {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := fencePattern.FindStringSubmatch(line); m != nil {
			block := Block{Type: BlockCode, Language: m[1]}
			j := i + 1
			for j < len(lines) && !fencePattern.MatchString(lines[j]) {
				block.Lines = append(block.Lines, lines[j])
				j++
			}
			// j points at the closing fence, or end of input for an
			// unterminated block
			blocks = append(blocks, block)
			i = j
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Type: BlockHeading, Level: len(m[1]), Text: strings.TrimSpace(m[2])})
			continue
		}

		if rulePattern.MatchString(line) {
			blocks = append(blocks, Block{Type: BlockRule})
			continue
		}

		if quotePattern.MatchString(line) {
			block := Block{Type: BlockQuote}
			j := i
			for j < len(lines) {
				m := quotePattern.FindStringSubmatch(lines[j])
				if m == nil {
					break
				}
				depth := len(m[1])
				if depth > block.Level {
					block.Level = depth
				}
				block.Items = append(block.Items, ListItem{Text: m[2], Indent: depth})
				j++
			}
			blocks = append(blocks, block)
			i = j - 1
			continue
		}

		// Task lists before bullets: "- [ ]" also matches the bullet shape
		if taskPattern.MatchString(line) {
			block := Block{Type: BlockTaskList}
			j := i
			for j < len(lines) {
				m := taskPattern.FindStringSubmatch(lines[j])
				if m == nil {
					break
				}
				block.Items = append(block.Items, ListItem{
					Text:    m[3],
					Indent:  len(m[1]),
					Checked: strings.EqualFold(m[2], "x"),
					Task:    true,
				})
				j++
			}
			blocks = append(blocks, block)
			i = j - 1
			continue
		}

		if tableRowPattern.MatchString(line) {
			block := Block{Type: BlockTable}
			j := i
			for j < len(lines) && tableRowPattern.MatchString(lines[j]) {
				// The second row is dropped when it is a dashes/colons
				// separator row.
				if j == i+1 && separatorRow.MatchString(lines[j]) {
					j++
					continue
				}
				block.Rows = append(block.Rows, splitTableRow(lines[j]))
				j++
			}
			blocks = append(blocks, block)
			i = j - 1
			continue
		}

		if bulletPattern.MatchString(line) || orderedPattern.MatchString(line) {
			block := Block{Type: BlockList, Ordered: orderedPattern.MatchString(line)}
			j := i
			for j < len(lines) {
				var m []string
				if block.Ordered {
					m = orderedPattern.FindStringSubmatch(lines[j])
				} else {
					m = bulletPattern.FindStringSubmatch(lines[j])
				}
				if m == nil || taskPattern.MatchString(lines[j]) {
					break
				}
				block.Items = append(block.Items, ListItem{Text: m[2], Indent: len(m[1])})
				j++
			}
			blocks = append(blocks, block)
			i = j - 1
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		blocks = append(blocks, Block{Type: BlockParagraph, Text: line})
	}

	return blocks
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// TableOfContents derives TOC entries from the heading blocks. Each heading
// gets a slug id; duplicate slugs get a numeric suffix starting at 2.
func TableOfContents(blocks []Block) []TOCEntry {
	var toc []TOCEntry
	used := make(map[string]int)

	for _, block := range blocks {
		if block.Type != BlockHeading {
			continue
		}
		id := Slug(block.Text)
		used[id]++
		if n := used[id]; n > 1 {
			id = id + "-" + strconv.Itoa(n)
		}
		toc = append(toc, TOCEntry{Level: block.Level, Text: block.Text, ID: id})
	}
	return toc
}

// Slug converts heading text to an anchor id: lowercase, spaces to hyphens,
// non-word characters stripped, repeated hyphens collapsed. Empty results
// fall back to "section".
func Slug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "section"
	}
	return s
}
