package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRackType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"prefix wins over seo keywords", "하이랙 철제선반 앵글 중량랙 물류", "하이랙"},
		{"alias folds to canonical", "파래트랙 중량랙", "파렛트랙"},
		{"another alias", "파랫트랙 산업용", "파렛트랙"},
		{"stainless alias", "올스텐랙 주방 선반", "스텐랙"},
		{"cyber alias", "사이버랙 조립식", "스텐랙"},
		{"light duty alias", "초스피드 조립선반", "경량랙"},
		{"silver alias", "실버랙 가정용", "경량랙"},
		{"plain family", "중량랙 무볼트 철제선반", "중량랙"},
		{"unknown falls back to first word", "무볼트선반 조립식 앵글", "무볼트선반"},
		{"empty name", "", "기타"},
		{"whitespace only", "   ", "기타"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractRackType(tt.input))
		})
	}
}
