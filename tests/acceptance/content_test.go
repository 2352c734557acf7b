package acceptance

import (
	"net/http"
	"sync"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
)

func (s *Suite) createPost(token, title string) *domain.Post {
	resp := s.doJSON("POST", "/api/v1/posts", token, dto.CreatePostRequest{Title: title})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "post creation should succeed")

	var post domain.Post
	s.decode(resp, &post)
	return &post
}

func (s *Suite) TestPost_CreateRequiresAuth() {
	resp := s.doJSON("POST", "/api/v1/posts", "", dto.CreatePostRequest{Title: "A Guide"})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestPost_Lifecycle() {
	tokens, _ := s.register("author", "author@example.com")

	post := s.createPost(tokens.AccessToken, "Haven Retake Guide")
	s.Equal("haven-retake-guide", post.Slug)
	s.False(post.Published)

	// Unpublished posts are invisible in the public listing
	listResp := s.doJSON("GET", "/api/v1/posts", "", nil)
	var listed []domain.Post
	s.decode(listResp, &listed)
	s.Empty(listed)

	pubResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/publish", tokens.AccessToken, nil)
	pubResp.Body.Close()
	s.Equal(http.StatusOK, pubResp.StatusCode)

	listResp = s.doJSON("GET", "/api/v1/posts", "", nil)
	s.decode(listResp, &listed)
	s.Require().Len(listed, 1)
	s.Equal(post.ID, listed[0].ID)

	slugResp := s.doJSON("GET", "/api/v1/posts/by-slug/haven-retake-guide", "", nil)
	s.Equal(http.StatusOK, slugResp.StatusCode)
	var bySlug domain.Post
	s.decode(slugResp, &bySlug)
	s.Equal(post.ID, bySlug.ID)
}

func (s *Suite) TestPost_ViewCounter() {
	tokens, _ := s.register("author", "author@example.com")
	post := s.createPost(tokens.AccessToken, "Split Defense Setups")

	resp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/views", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var views dto.ViewsResponse
	s.decode(resp, &views)
	s.Equal(int64(1), views.Views)
}

func (s *Suite) TestPost_ViewCounterConcurrent() {
	tokens, _ := s.register("author", "author@example.com")
	post := s.createPost(tokens.AccessToken, "Ascent Smoke Lineups")

	const viewers = 20
	statuses := make(chan int, viewers)

	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(s.BaseURL+"/api/v1/posts/"+post.ID+"/views", "application/json", nil)
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		s.Equal(http.StatusOK, status)
	}

	// Concurrent increments must not lose a view
	getResp := s.doJSON("GET", "/api/v1/posts/"+post.ID, "", nil)
	var after domain.Post
	s.decode(getResp, &after)
	s.Equal(int64(viewers), after.Views)
}

func (s *Suite) TestPost_UpdateByNonOwner() {
	owner, _ := s.register("owner", "owner@example.com")
	intruder, _ := s.register("intruder", "intruder@example.com")

	post := s.createPost(owner.AccessToken, "My Post")

	title := "Hijacked"
	resp := s.doJSON("PATCH", "/api/v1/posts/"+post.ID, intruder.AccessToken, dto.UpdatePostRequest{Title: &title})
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestPost_Tags() {
	tokens, _ := s.register("author", "author@example.com")
	post := s.createPost(tokens.AccessToken, "Tagged Post")

	tagResp := s.doJSON("POST", "/api/v1/tags", tokens.AccessToken, dto.CreateTagRequest{Name: "Lineups"})
	s.Require().Equal(http.StatusCreated, tagResp.StatusCode)
	var tag domain.Tag
	s.decode(tagResp, &tag)
	s.Equal("lineups", tag.Slug)

	attachResp := s.doJSON("PUT", "/api/v1/posts/"+post.ID+"/tags/"+tag.ID, tokens.AccessToken, nil)
	attachResp.Body.Close()
	s.Equal(http.StatusOK, attachResp.StatusCode)

	listResp := s.doJSON("GET", "/api/v1/posts/"+post.ID+"/tags", "", nil)
	var tags []domain.Tag
	s.decode(listResp, &tags)
	s.Require().Len(tags, 1)
	s.Equal("Lineups", tags[0].Name)

	detachResp := s.doJSON("DELETE", "/api/v1/posts/"+post.ID+"/tags/"+tag.ID, tokens.AccessToken, nil)
	detachResp.Body.Close()
	s.Equal(http.StatusOK, detachResp.StatusCode)

	listResp = s.doJSON("GET", "/api/v1/posts/"+post.ID+"/tags", "", nil)
	s.decode(listResp, &tags)
	s.Empty(tags)
}

func (s *Suite) TestTag_GetByName() {
	tokens, _ := s.register("author", "author@example.com")

	createResp := s.doJSON("POST", "/api/v1/tags", tokens.AccessToken, dto.CreateTagRequest{Name: "Lineups"})
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)
	var tag domain.Tag
	s.decode(createResp, &tag)

	resp := s.doJSON("GET", "/api/v1/tags/by-name/Lineups", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var fetched domain.Tag
	s.decode(resp, &fetched)
	s.Equal(tag.ID, fetched.ID)

	missing := s.doJSON("GET", "/api/v1/tags/by-name/unknown", "", nil)
	missing.Body.Close()
	s.Equal(http.StatusNotFound, missing.StatusCode)
}

func (s *Suite) TestComment_SoftDelete() {
	tokens, _ := s.register("commenter", "commenter@example.com")
	post := s.createPost(tokens.AccessToken, "Commented Post")

	createResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/comments", tokens.AccessToken, dto.CreateCommentRequest{
		Content: "great writeup",
	})
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)
	var comment domain.Comment
	s.decode(createResp, &comment)

	delResp := s.doJSON("DELETE", "/api/v1/comments/"+comment.ID, tokens.AccessToken, nil)
	delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)

	// The row survives as a placeholder with blanked content
	getResp := s.doJSON("GET", "/api/v1/comments/"+comment.ID, "", nil)
	s.Equal(http.StatusOK, getResp.StatusCode)
	var deleted domain.Comment
	s.decode(getResp, &deleted)
	s.True(deleted.IsDeleted)
	s.Empty(deleted.Content)
}

func (s *Suite) TestComment_ReplyToDeleted() {
	tokens, _ := s.register("commenter", "commenter@example.com")
	post := s.createPost(tokens.AccessToken, "Commented Post")

	createResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/comments", tokens.AccessToken, dto.CreateCommentRequest{
		Content: "parent",
	})
	var parent domain.Comment
	s.decode(createResp, &parent)

	delResp := s.doJSON("DELETE", "/api/v1/comments/"+parent.ID, tokens.AccessToken, nil)
	delResp.Body.Close()

	replyResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/comments", tokens.AccessToken, dto.CreateCommentRequest{
		Content:  "reply",
		ParentID: &parent.ID,
	})
	defer replyResp.Body.Close()

	s.Equal(http.StatusBadRequest, replyResp.StatusCode)
}

func (s *Suite) TestLike_Post() {
	tokens, _ := s.register("liker", "liker@example.com")
	post := s.createPost(tokens.AccessToken, "Liked Post")

	likeResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, nil)
	s.Equal(http.StatusCreated, likeResp.StatusCode)
	var like domain.Like
	s.decode(likeResp, &like)
	s.Equal(domain.LikeValueUp, like.Value)

	// Second reaction from the same user is rejected
	dupResp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, nil)
	dupResp.Body.Close()
	s.Equal(http.StatusBadRequest, dupResp.StatusCode)

	listResp := s.doJSON("GET", "/api/v1/posts/"+post.ID+"/likes", "", nil)
	var likes []domain.Like
	s.decode(listResp, &likes)
	s.Len(likes, 1)

	// The caller can look up their own reaction
	mineResp := s.doJSON("GET", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, nil)
	s.Equal(http.StatusOK, mineResp.StatusCode)
	var mine domain.Like
	s.decode(mineResp, &mine)
	s.Equal(like.ID, mine.ID)

	unlikeResp := s.doJSON("DELETE", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, nil)
	unlikeResp.Body.Close()
	s.Equal(http.StatusOK, unlikeResp.StatusCode)

	goneResp := s.doJSON("GET", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, nil)
	goneResp.Body.Close()
	s.Equal(http.StatusNotFound, goneResp.StatusCode)

	listResp = s.doJSON("GET", "/api/v1/posts/"+post.ID+"/likes", "", nil)
	s.decode(listResp, &likes)
	s.Empty(likes)
}

func (s *Suite) TestLike_PostRejectsDislike() {
	tokens, _ := s.register("liker", "liker@example.com")
	post := s.createPost(tokens.AccessToken, "Disliked Post")

	resp := s.doJSON("POST", "/api/v1/posts/"+post.ID+"/like", tokens.AccessToken, dto.LikeRequest{Value: -1})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLike_VideoCounters() {
	uploader, _ := s.register("uploader", "uploader@example.com")
	hater, _ := s.register("hater", "hater@example.com")

	createResp := s.doJSON("POST", "/api/v1/videos", uploader.AccessToken, dto.CreateVideoRequest{
		Title: "Ace Clutch",
	})
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)
	var video domain.Video
	s.decode(createResp, &video)

	likeResp := s.doJSON("POST", "/api/v1/videos/"+video.ID+"/like", uploader.AccessToken, nil)
	likeResp.Body.Close()
	s.Equal(http.StatusCreated, likeResp.StatusCode)

	dislikeResp := s.doJSON("POST", "/api/v1/videos/"+video.ID+"/like", hater.AccessToken, dto.LikeRequest{Value: -1})
	dislikeResp.Body.Close()
	s.Equal(http.StatusCreated, dislikeResp.StatusCode)

	getResp := s.doJSON("GET", "/api/v1/videos/"+video.ID, "", nil)
	var after domain.Video
	s.decode(getResp, &after)
	s.Equal(1, after.Likes)
	s.Equal(1, after.Dislikes)

	// Removing the dislike decrements its counter only
	unlikeResp := s.doJSON("DELETE", "/api/v1/videos/"+video.ID+"/like", hater.AccessToken, nil)
	unlikeResp.Body.Close()
	s.Equal(http.StatusOK, unlikeResp.StatusCode)

	getResp = s.doJSON("GET", "/api/v1/videos/"+video.ID, "", nil)
	s.decode(getResp, &after)
	s.Equal(1, after.Likes)
	s.Equal(0, after.Dislikes)
}

func (s *Suite) TestCatalog_MapsAndAgents() {
	tokens, _ := s.register("admin", "admin@example.com")

	mapResp := s.doJSON("POST", "/api/v1/maps", tokens.AccessToken, dto.CreateMapRequest{Name: "Haven"})
	s.Require().Equal(http.StatusCreated, mapResp.StatusCode)
	var m domain.Map
	s.decode(mapResp, &m)
	s.Equal("haven", m.Slug)

	// Maps resolve by ID and by slug through the same endpoint
	bySlug := s.doJSON("GET", "/api/v1/maps/haven", "", nil)
	s.Equal(http.StatusOK, bySlug.StatusCode)
	var fetched domain.Map
	s.decode(bySlug, &fetched)
	s.Equal(m.ID, fetched.ID)

	byID := s.doJSON("GET", "/api/v1/maps/"+m.ID, "", nil)
	byID.Body.Close()
	s.Equal(http.StatusOK, byID.StatusCode)

	agentResp := s.doJSON("POST", "/api/v1/agents", tokens.AccessToken, dto.CreateAgentRequest{Name: "Sova"})
	s.Require().Equal(http.StatusCreated, agentResp.StatusCode)
	var agent domain.Agent
	s.decode(agentResp, &agent)

	// Agents resolve by ID and by name through the same endpoint
	byName := s.doJSON("GET", "/api/v1/agents/Sova", "", nil)
	s.Equal(http.StatusOK, byName.StatusCode)
	var fetchedAgent domain.Agent
	s.decode(byName, &fetchedAgent)
	s.Equal(agent.ID, fetchedAgent.ID)

	abilityResp := s.doJSON("POST", "/api/v1/agents/"+agent.ID+"/abilities", tokens.AccessToken, dto.CreateAbilityRequest{
		Name: "Recon Bolt",
	})
	s.Require().Equal(http.StatusCreated, abilityResp.StatusCode)

	// Duplicate ability name for the same agent is rejected
	dupResp := s.doJSON("POST", "/api/v1/agents/"+agent.ID+"/abilities", tokens.AccessToken, dto.CreateAbilityRequest{
		Name: "Recon Bolt",
	})
	dupResp.Body.Close()
	s.Equal(http.StatusBadRequest, dupResp.StatusCode)

	listResp := s.doJSON("GET", "/api/v1/agents/"+agent.ID+"/abilities", "", nil)
	var abilities []domain.Ability
	s.decode(listResp, &abilities)
	s.Len(abilities, 1)
}
