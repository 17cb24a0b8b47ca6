package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/middleware"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// parsePagination reads a 1-based page number and a page size from the
// given query keys. Invalid values fall back to page 1 and the default size.
func parsePagination(ctx *gin.Context, pageKey, sizeKey string) store.Page {
	page := store.Page{Number: 1, Size: store.DefaultPageSize}
	if p, err := strconv.Atoi(ctx.Query(pageKey)); err == nil && p > 0 {
		page.Number = p
	}
	if s, err := strconv.Atoi(ctx.Query(sizeKey)); err == nil && s > 0 && s <= store.MaxPageSize {
		page.Size = s
	}
	return page
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}

// identity returns the caller resolved by the gate. Routes without the gate
// never call it.
func identity(ctx *gin.Context) (session.Identity, error) {
	id, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		return session.Identity{}, apperr.New(apperr.AuthMissingToken)
	}
	return id, nil
}
