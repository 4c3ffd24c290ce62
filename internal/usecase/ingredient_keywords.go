package usecase

import (
	"log"
	"strings"
)

// mainIngredients are the keywords worth searching the catalog for, in search order
var mainIngredients = []string{
	"chicken", "beef", "pork", "fish", "salmon", "shrimp", "turkey", "lamb",
	"rice", "pasta", "noodles", "bread", "potato", "tomato", "onion", "garlic",
	"cheese", "egg",
}

// KeywordDetector finds catalog search keywords in inventory names
type KeywordDetector struct {
	enableDebugLogging bool
}

// NewKeywordDetector creates a new keyword detector
func NewKeywordDetector(enableDebugLogging bool) *KeywordDetector {
	return &KeywordDetector{
		enableDebugLogging: enableDebugLogging,
	}
}

// DetectMainIngredients returns each main-ingredient keyword contained in at
// least one inventory name. Keywords keep the fixed list order and appear once.
func (d *KeywordDetector) DetectMainIngredients(inventory []string) []string {
	normalized := make([]string, 0, len(inventory))
	for _, name := range inventory {
		if n := Normalize(name); n != "" {
			normalized = append(normalized, n)
		}
	}

	var keywords []string
	for _, keyword := range mainIngredients {
		for _, name := range normalized {
			if strings.Contains(name, keyword) {
				keywords = append(keywords, keyword)
				break
			}
		}
	}

	if d.enableDebugLogging {
		log.Printf("[KEYWORDS] Inventory: %d items -> Keywords: %v", len(normalized), keywords)
	}

	return keywords
}
