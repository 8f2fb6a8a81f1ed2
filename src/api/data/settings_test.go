package data

import (
	"testing"

	"github.com/stake-plus/portfolio-chat/src/api/types"
)

func TestSetSettings(t *testing.T) {
	t.Cleanup(func() { SetSettings(nil) })

	SetSettings([]types.Setting{
		{Name: " LLM_Model ", Value: "gpt-4o-mini"},
		{Name: "rate_limit", Value: "10"},
	})
	if got := GetSetting("llm_model"); got != "gpt-4o-mini" {
		t.Fatalf("llm_model = %q", got)
	}
	if got := GetSetting("rate_limit"); got != "10" {
		t.Fatalf("rate_limit = %q", got)
	}
	if got := GetSetting("missing"); got != "" {
		t.Fatalf("missing = %q", got)
	}

	SetSettings([]types.Setting{{Name: "port", Value: "9000"}})
	if GetSetting("rate_limit") != "" {
		t.Fatal("old settings survived replacement")
	}
}
