package model

import "shop/shared/model"

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID        = "id"
	FieldThumbnail = "thumbnail"
	FieldProductID = "product_id"
	FieldNote      = "note"

	ThumbnailDirectory = "galleries"
)

type Gallery struct {
	ID          int64   `db:"id" generated:"true"`
	Thumbnail   string  `db:"thumbnail"`
	ProductID   int64   `db:"product_id"`
	ProductName *string `db:"product_name" table:"products" column:"name"`
	Note        string  `db:"note"`
	model.Metadata
}

func (Gallery) GetJoinQuery() string {
	return "LEFT JOIN products ON products.id = galleries.product_id"
}
