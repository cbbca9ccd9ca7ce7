package dto

import (
	"mime/multipart"
	"path/filepath"
	"shop/internal/domains/gallery/model"
	"shop/shared"
	"shop/shared/constant"
	gDto "shop/shared/dto"
	gModel "shop/shared/model"

	"github.com/google/uuid"
)

type CreateGalleryRequest struct {
	Thumbnail string `json:"thumbnail"  validate:"required,max=2048"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Note      string `json:"note"       validate:"max=255"`
}

func (c *CreateGalleryRequest) ToModel() model.Gallery {
	return model.Gallery{
		Thumbnail: c.Thumbnail,
		ProductID: c.ProductID,
		Note:      c.Note,
		Metadata:  gModel.NewMetadata(),
	}
}

// UpdateGalleryRequest overwrites thumbnail and product. The stored note is never touched by an update.
type UpdateGalleryRequest struct {
	Thumbnail string `db:"thumbnail"  json:"thumbnail"  validate:"required,max=2048"`
	ProductID int64  `db:"product_id" json:"product_id" validate:"required,gt=0"`
}

type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type GalleryResponse struct {
	ID        int64           `json:"id"`
	Thumbnail string          `json:"thumbnail"`
	Product   ProductResponse `json:"product"`
	Note      string          `json:"note"`
	gDto.Metadata
}

func (r *GalleryResponse) FromModel(model model.Gallery) {
	r.ID = model.ID
	r.Thumbnail = model.Thumbnail
	r.Product.ID = model.ProductID
	r.Note = model.Note

	if model.ProductName != nil {
		r.Product.Name = *model.ProductName
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetGalleriesResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetGalleriesResponse) FromModels(models []model.Gallery, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Galleries = make([]GalleryResponse, len(models))
	for i, m := range models {
		r.Galleries[i].FromModel(m)
	}
}

type UploadThumbnailRequest struct {
	File     *multipart.FileHeader `json:"file" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	FileData multipart.File        `json:"-"`
}

// ContentType is the declared content type of the uploaded part.
func (r *UploadThumbnailRequest) ContentType() string {
	return r.File.Header.Get(constant.RequestHeaderContentType)
}

// ObjectName is a collision free name for the stored object that keeps the original extension.
func (r *UploadThumbnailRequest) ObjectName() string {
	ext := filepath.Ext(r.File.Filename)
	if ext == constant.Empty {
		ext = extensionFor(r.ContentType())
	}

	return uuid.NewString() + ext
}

func extensionFor(contentType string) string {
	switch contentType {
	case constant.ContentTypePNG:
		return ".png"
	case constant.ContentTypeJPG, constant.ContentTypeJPEG:
		return ".jpg"
	default:
		return constant.Empty
	}
}

type UploadThumbnailResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadThumbnailResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
