package api

import "github.com/dfryer1193/postboard/blog/domain"

// Post is the wire form of a post in every response
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostProto is the body of create and update requests.
// An omitted field decodes to the empty string.
type PostProto struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func FromDomain(p *domain.Post) Post {
	return Post{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
	}
}

func FromDomainList(posts []*domain.Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, FromDomain(p))
	}
	return out
}

func (p PostProto) ToUpdate() domain.PostUpdate {
	return domain.PostUpdate{
		Title:   p.Title,
		Content: p.Content,
	}
}
