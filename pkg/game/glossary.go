package game

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/embedded"
)

// GlossaryPath 词汇表在嵌入文件系统中的路径
const GlossaryPath = "data/glossary.txt"

// Glossary OOP 术语词汇表
// 定义弹窗通过键查询术语解释
type Glossary struct {
	entries map[string]string // 键 -> 解释
}

// NewGlossary 从嵌入文件系统加载词汇表
//
// 文件格式：
//
//	[KEY]
//	解释文本
//
// 示例：
//
//	[ENCAPSULATION]
//	Encapsulation keeps an object's data private...
func NewGlossary(filePath string) (*Glossary, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open glossary file %s: %w", filePath, err)
	}
	defer file.Close()

	g, err := ParseGlossary(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary file %s: %w", filePath, err)
	}
	return g, nil
}

// ParseGlossary 解析词汇表内容
func ParseGlossary(r io.Reader) (*Glossary, error) {
	g := &Glossary{
		entries: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		// 键定义（格式：[KEY]）
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.ToUpper(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// 键后面的第一行非空文本为解释
		if currentKey != "" {
			g.entries[currentKey] = strings.TrimSpace(line)
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// Definition 返回术语解释，键不区分大小写
func (g *Glossary) Definition(key string) (string, bool) {
	text, ok := g.entries[strings.ToUpper(strings.TrimSpace(key))]
	return text, ok
}

// Title 返回术语的显示标题，如 "ENCAPSULATION" → "Encapsulation"
func (g *Glossary) Title(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(key), "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Keys 返回所有术语键（已排序）
func (g *Glossary) Keys() []string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len 返回术语数量
func (g *Glossary) Len() int {
	return len(g.entries)
}
