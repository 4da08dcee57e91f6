package profile

import "testing"

func TestResolveField(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		field   LogicalField
		want    string
	}{
		{
			name:    "primary key wins",
			payload: map[string]any{"managerName": "Pep", "name": "Josep"},
			field:   FieldManagerName,
			want:    "Pep",
		},
		{
			name:    "sheet header alias",
			payload: map[string]any{"Manager Name": "Pep"},
			field:   FieldManagerName,
			want:    "Pep",
		},
		{
			name:    "short legacy alias",
			payload: map[string]any{"name": "Pep"},
			field:   FieldManagerName,
			want:    "Pep",
		},
		{
			name:    "blank primary falls through to next alias",
			payload: map[string]any{"managerName": "   ", "name": "Pep"},
			field:   FieldManagerName,
			want:    "Pep",
		},
		{
			name:    "missing resolves to empty",
			payload: map[string]any{},
			field:   FieldClubName,
			want:    "",
		},
		{
			name:    "value is trimmed",
			payload: map[string]any{"club": "  Barcelona  "},
			field:   FieldClubName,
			want:    "Barcelona",
		},
		{
			name:    "numeric payload value stringified",
			payload: map[string]any{"points": float64(103)},
			field:   FieldTotalPoints,
			want:    "103",
		},
		{
			name:    "legacy story alias is alternative input",
			payload: map[string]any{"managerStory": "the long road"},
			field:   FieldStory,
			want:    "the long road",
		},
		{
			name:    "primary story wins over legacy alias",
			payload: map[string]any{"story": "primary", "managerStory": "legacy"},
			field:   FieldStory,
			want:    "primary",
		},
		{
			name:    "unsupported value type ignored",
			payload: map[string]any{"type": []any{"legend"}},
			field:   FieldType,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveField(tt.payload, tt.field); got != tt.want {
				t.Errorf("ResolveField(%v, %s) = %q, want %q", tt.payload, tt.field, got, tt.want)
			}
		})
	}
}
