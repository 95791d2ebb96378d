package handlers

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProductFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		want     bson.M
	}{
		{
			name: "no filters",
			want: bson.M{},
		},
		{
			name:     "category only",
			category: "kitchen",
			want:     bson.M{"category": "kitchen"},
		},
		{
			name:   "search matches name and description case-insensitively",
			search: "bamboo",
			want: bson.M{
				"$or": []bson.M{
					{"name": bson.M{"$regex": "bamboo", "$options": "i"}},
					{"description": bson.M{"$regex": "bamboo", "$options": "i"}},
				},
			},
		},
		{
			name:     "category and search combine",
			category: "kitchen",
			search:   "straw",
			want: bson.M{
				"category": "kitchen",
				"$or": []bson.M{
					{"name": bson.M{"$regex": "straw", "$options": "i"}},
					{"description": bson.M{"$regex": "straw", "$options": "i"}},
				},
			},
		},
		{
			name:   "whitespace-only search is ignored",
			search: "   ",
			want:   bson.M{},
		},
		{
			name:   "regex metacharacters are quoted",
			search: "100% (eco)",
			want: bson.M{
				"$or": []bson.M{
					{"name": bson.M{"$regex": `100% \(eco\)`, "$options": "i"}},
					{"description": bson.M{"$regex": `100% \(eco\)`, "$options": "i"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildProductFilter(tt.category, tt.search)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildProductFilter(%q, %q) = %v, want %v",
					tt.category, tt.search, got, tt.want)
			}
		})
	}
}
