package services

import (
	"blogapi/app/models"
	"blogapi/app/payload"
)

func toCommentPayload(c *models.Comment) payload.Comment {
	return payload.Comment{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Body:  c.Body,
	}
}

func toCommentEntity(p payload.Comment) *models.Comment {
	return &models.Comment{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Body:  p.Body,
	}
}

func toPostPayload(p *models.Post) payload.Post {
	return payload.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
	}
}

func toPostEntity(p payload.Post) *models.Post {
	return &models.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
	}
}
