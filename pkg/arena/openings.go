// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"math/rand"
	"os"
	"strings"
)

// NewBook loads an opening book: a flat file with one starting FEN per
// line, walked either sequentially (default) or at random to diversify
// the dataset's openings.
func NewBook(name string, order string) (*Book, error) {
	var book Book
	file, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	for _, entry := range strings.Split(string(file), "\n") {
		entry = strings.Trim(entry, "\n\r\t ")
		if entry != "" {
			book.entries = append(book.entries, entry)
		}
	}

	book.order = order

	// A random book also picks its first entry at random.
	if book.order == "random" && len(book.entries) > 0 {
		book.Next()
	}

	return &book, nil
}

type Book struct {
	entries []string
	order   string
	current int
}

func (book *Book) Next() {
	switch book.order {
	case "random":
		book.current = rand.Int() % len(book.entries)
	default:
		book.current = (book.current + 1) % len(book.entries)
	}
}

func (book *Book) Current() string {
	return book.entries[book.current]
}
