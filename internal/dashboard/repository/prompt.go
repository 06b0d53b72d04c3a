package repository

import (
	"fmt"
	"strings"
)

const bullBearPromptTemplate = "What are the main bull and bear case drivers for %s stock over the next 12 months?"

// BuildBullBearPrompt builds the single narrative prompt for a ticker.
func BuildBullBearPrompt(ticker string) string {
	return fmt.Sprintf(bullBearPromptTemplate, strings.TrimSpace(ticker))
}
