// Package revalidate - Test bảng ánh xạ collection sang cache tag.
package revalidate

import (
	"reflect"
	"sort"
	"testing"

	catalogmodels "souk_commerce/internal/api/catalog/models"
	"souk_commerce/internal/api/events"
)

func sortedTags(e events.DataChangeEvent) []string {
	tags := TagsForEvent(e)
	sort.Strings(tags)
	return tags
}

func TestTagsForEvent_Table(t *testing.T) {
	cases := []struct {
		collection string
		want       []string
	}{
		{"products", []string{TagAllContent, TagLandingPage, TagProducts}},
		{"categories", []string{TagAllContent, TagCategories, TagLandingPage}},
		{"sections", []string{TagAllContent, TagLandingPage, TagSections}},
		{"configs", []string{TagAllContent, TagConfig, TagSEOMeta}},
	}
	for _, tc := range cases {
		got := sortedTags(events.DataChangeEvent{CollectionName: tc.collection, Operation: events.OpUpdate})
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("collection %q: tags = %v, muốn %v", tc.collection, got, tc.want)
		}
	}
}

func TestTagsForEvent_ProductSlugTag(t *testing.T) {
	product := catalogmodels.Product{Slug: "savon-noir"}
	tags := TagsForEvent(events.DataChangeEvent{
		CollectionName: "products",
		Operation:      events.OpUpdate,
		Document:       product,
	})

	found := false
	for _, tag := range tags {
		if tag == "product-savon-noir" {
			found = true
		}
	}
	if !found {
		t.Errorf("ghi sản phẩm có slug phải kèm tag product-<slug>, nhận được %v", tags)
	}
}

func TestTagsForEvent_ProductWithoutSlug(t *testing.T) {
	tags := TagsForEvent(events.DataChangeEvent{
		CollectionName: "products",
		Operation:      events.OpDelete,
		Document:       nil,
	})
	for _, tag := range tags {
		if tag == "product-" {
			t.Error("không được sinh tag product- rỗng khi document không có slug")
		}
	}
	if len(tags) != 3 {
		t.Errorf("sản phẩm không slug vẫn phải có 3 tag cơ bản, nhận được %v", tags)
	}
}

func TestTagsForEvent_UntrackedCollections(t *testing.T) {
	for _, collection := range []string{"orders", "users", "payment_events", "unknown"} {
		if tags := TagsForEvent(events.DataChangeEvent{CollectionName: collection}); tags != nil {
			t.Errorf("collection %q không được sinh tag, nhận được %v", collection, tags)
		}
	}
}

func TestIsValidManualTag(t *testing.T) {
	for _, tag := range []string{TagProducts, TagCategories, TagSections, TagConfig, TagLandingPage, TagAllContent, TagSEOMeta} {
		if !IsValidManualTag(tag) {
			t.Errorf("tag %q phải nằm trong whitelist revalidate thủ công", tag)
		}
	}
	for _, tag := range []string{"", "product-savon-noir", "orders", "ALL-CONTENT"} {
		if IsValidManualTag(tag) {
			t.Errorf("tag %q không được nằm trong whitelist revalidate thủ công", tag)
		}
	}
}
