package controllers

import (
	"net/http"
	"strconv"

	"blogapp/config"
	"blogapp/middlewares"
	"blogapp/services"

	"github.com/gin-gonic/gin"
)

// pagingParams 缺省页码按 1 处理；pageSize 不传用默认值，
// 传了但 <= 0 交给 service 报 400
func pagingParams(c *gin.Context) (page, pageSize int, err error) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		if v, perr := strconv.Atoi(raw); perr == nil {
			page = v
		}
	}
	pageSize = config.AppConfig.Feed.DefaultPageSize
	if raw := c.Query("pageSize"); raw != "" {
		v, perr := strconv.Atoi(raw)
		if perr != nil {
			return 0, 0, services.ErrInvalidPageSize
		}
		pageSize = v
	}
	return page, pageSize, nil
}

// GetFeed GET /blog/bulk?page=&pageSize=&tag=&q=
func GetFeed(c *gin.Context) {
	page, pageSize, err := pagingParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filter := services.FeedFilter{Query: c.Query("q")}
	if tag := c.Query("tag"); tag != "" {
		if !services.IsAllowedTag(tag) {
			respondError(c, services.ErrUnknownTag)
			return
		}
		filter.Tag = tag
	}

	feed, err := feedService.GetPage(c.Request.Context(), middlewares.ViewerID(c), page, pageSize, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":       "blogs fetched",
		"blogs":     feed.Blogs,
		"page":      feed.Page,
		"pageSize":  feed.PageSize,
		"totalPage": feed.TotalPage,
		"total":     feed.Total,
	})
}

// GetFeedByTag GET /blog/tags/filter?tag=&page=&pageSize=
// tag 必须在栏目分类表里，否则 400
func GetFeedByTag(c *gin.Context) {
	tag := c.Query("tag")
	if !services.IsAllowedTag(tag) {
		respondError(c, services.ErrUnknownTag)
		return
	}
	page, pageSize, err := pagingParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	feed, err := feedService.GetPage(c.Request.Context(), middlewares.ViewerID(c), page, pageSize, services.FeedFilter{Tag: tag})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":       "blogs fetched",
		"blogs":     feed.Blogs,
		"page":      feed.Page,
		"pageSize":  feed.PageSize,
		"totalPage": feed.TotalPage,
		"total":     feed.Total,
	})
}

// GetTrendingTags GET /blog/tags/trend，读热榜快照（最多 5 分钟陈旧）
func GetTrendingTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"msg":          "trending tags fetched",
		"trendingTags": trendingService.Rank(),
	})
}
