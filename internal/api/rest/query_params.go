package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/gallery"
)

// ListTokensQueryParams holds query parameters for GET /tokens
type ListTokensQueryParams struct {
	// Account is the viewer's address, used by Mine
	Account string `form:"account"`
	// Mine keeps the tokens owned by Account
	Mine bool `form:"mine,default=false"`
	// Search filters on name, description and owner
	Search string `form:"q"`
}

// ParseListTokensQuery parses query parameters for GET /tokens
func ParseListTokensQuery(c *gin.Context) (*ListTokensQueryParams, error) {
	var params ListTokensQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Account != "" {
		normalized := domain.NormalizeAddress(params.Account)
		if normalized == "" {
			return nil, fmt.Errorf("invalid account address: %s", params.Account)
		}
		params.Account = normalized
	}

	return &params, nil
}

// Validate checks combinations the binding cannot express
func (p *ListTokensQueryParams) Validate() error {
	if p.Mine && p.Account == "" {
		return fmt.Errorf("mine=true requires an account")
	}
	return nil
}

// Filter converts the parameters into a gallery filter
func (p *ListTokensQueryParams) Filter() gallery.Filter {
	return gallery.Filter{
		Account:  p.Account,
		MineOnly: p.Mine,
		Search:   p.Search,
	}
}
