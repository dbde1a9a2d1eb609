package controllers

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
)

type memCommunity struct {
	id          int64
	name        string
	slug        string
	description string
	creatorId   string
	members     []string
	moderators  []string
	createdAt   time.Time
}

type memPost struct {
	id          int64
	authorId    string
	communityId int64
	title       string
	content     string
	media       []string
	createdAt   time.Time
}

type memComment struct {
	id          int64
	authorId    string
	postId      int64
	parentId    *int64
	content     string
	publishedAt time.Time
}

type memState struct {
	nextId      int64
	users       map[string]model.User
	communities map[int64]memCommunity
	posts       map[int64]memPost
	comments    map[int64]memComment
	votes       map[model.VoteTarget]map[string]int8
}

func (s *memState) clone() *memState {
	c := &memState{
		nextId:      s.nextId,
		users:       map[string]model.User{},
		communities: map[int64]memCommunity{},
		posts:       map[int64]memPost{},
		comments:    map[int64]memComment{},
		votes:       map[model.VoteTarget]map[string]int8{},
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.communities {
		v.members = append([]string{}, v.members...)
		v.moderators = append([]string{}, v.moderators...)
		c.communities[k] = v
	}
	for k, v := range s.posts {
		v.media = append([]string{}, v.media...)
		c.posts[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k, v := range s.votes {
		voters := map[string]int8{}
		for voter, value := range v {
			voters[voter] = value
		}
		c.votes[k] = voters
	}
	return c
}

// memDB is an in-memory appDb.Database. WithTx restores a snapshot when fn fails.
type memDB struct {
	state *memState
	// failures makes the named operation return the error
	failures map[string]error
}

var _ appDb.Database = (*memDB)(nil)

func newMemDB() *memDB {
	return &memDB{
		state:    (&memState{}).clone(),
		failures: map[string]error{},
	}
}

func (m *memDB) WithTx(ctx context.Context, fn func(tx appDb.Tx) error) error {
	snapshot := m.state.clone()
	if err := fn(m); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *memDB) GetSQLDB() *sql.DB { return nil }

func (m *memDB) Close() error { return nil }

func (m *memDB) id() int64 {
	m.state.nextId++
	return m.state.nextId
}

func (m *memDB) displayable(id string) *model.DisplayableUser {
	user, ok := m.state.users[id]
	if !ok {
		return nil
	}
	return &model.DisplayableUser{Id: user.Id, Username: user.Username}
}

func (m *memDB) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range m.state.users {
		if existing.Username == user.Username {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'person.person_username_unique'"}
		}
	}
	created := *user
	created.CreatedAt = time.Now()
	m.state.users[user.Id] = created
	return nil
}

func (m *memDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, ok := m.state.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *memDB) CreateCommunity(ctx context.Context, req *appDb.CreateCommunity) (int64, error) {
	for _, existing := range m.state.communities {
		if existing.slug == req.Slug {
			return 0, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'community.community_slug_unique'"}
		}
	}
	id := m.id()
	m.state.communities[id] = memCommunity{
		id:          id,
		name:        req.Name,
		slug:        req.Slug,
		description: req.Description,
		creatorId:   req.CreatorId,
		createdAt:   time.Now(),
	}
	return id, nil
}

func (m *memDB) community(c memCommunity) *model.Community {
	posts, _ := m.GetPostIdsForCommunity(context.Background(), c.id)
	return &model.Community{
		Id:          c.id,
		Name:        c.name,
		Slug:        c.slug,
		Description: c.description,
		Creator:     m.displayable(c.creatorId),
		Members:     append([]string{}, c.members...),
		Moderators:  append([]string{}, c.moderators...),
		Posts:       posts,
		CreatedAt:   c.createdAt,
		UpdatedAt:   c.createdAt,
	}
}

func (m *memDB) GetCommunityById(ctx context.Context, id int64) (*model.Community, error) {
	c, ok := m.state.communities[id]
	if !ok {
		return nil, nil
	}
	return m.community(c), nil
}

func (m *memDB) GetCommunityBySlug(ctx context.Context, slug string) (*model.Community, error) {
	for _, c := range m.state.communities {
		if c.slug == slug {
			return m.community(c), nil
		}
	}
	return nil, nil
}

func (m *memDB) GetCommunities(ctx context.Context) ([]*model.Community, error) {
	communities := []*model.Community{}
	for _, c := range m.state.communities {
		communities = append(communities, m.community(c))
	}
	sort.Slice(communities, func(i, j int) bool { return communities[i].Name < communities[j].Name })
	return communities, nil
}

func (m *memDB) UpdateCommunity(ctx context.Context, id int64, req *appDb.UpdateCommunity) error {
	c := m.state.communities[id]
	c.name, c.slug, c.description = req.Name, req.Slug, req.Description
	m.state.communities[id] = c
	return nil
}

func (m *memDB) DeleteCommunity(ctx context.Context, id int64) error {
	if err := m.failures["DeleteCommunity"]; err != nil {
		return err
	}
	delete(m.state.communities, id)
	return nil
}

func (m *memDB) ApplyMembershipChanges(ctx context.Context, communityId int64, changes []model.SetChange) error {
	c := m.state.communities[communityId]
	for _, change := range changes {
		switch change.Set {
		case model.SetMembers:
			c.members = applyMemChange(c.members, change)
		case model.SetModerators:
			c.moderators = applyMemChange(c.moderators, change)
		}
	}
	m.state.communities[communityId] = c
	return nil
}

func applyMemChange(ids []string, change model.SetChange) []string {
	result := []string{}
	for _, id := range ids {
		if id != change.UserId {
			result = append(result, id)
		}
	}
	if change.Op == model.Added {
		result = append(result, change.UserId)
	}
	return result
}

func (m *memDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	id := m.id()
	m.state.posts[id] = memPost{
		id:          id,
		authorId:    req.AuthorId,
		communityId: req.CommunityId,
		title:       req.Title,
		content:     req.Content,
		media:       append([]string{}, req.Media...),
		createdAt:   time.Now(),
	}
	// failure is injected after the write, as a failed media insert would be
	return id, m.failures["CreatePost"]
}

func (m *memDB) post(p memPost) *model.Post {
	comments := []int64{}
	for _, c := range m.state.comments {
		if c.postId == p.id {
			comments = append(comments, c.id)
		}
	}
	sortIds(comments)
	return &model.Post{
		Id:          p.id,
		Title:       p.title,
		Content:     p.content,
		Author:      m.displayable(p.authorId),
		CommunityId: p.communityId,
		Media:       append([]string{}, p.media...),
		Votes:       m.voteSets(model.VoteTarget{Kind: model.TargetPost, Id: p.id}),
		Comments:    comments,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.createdAt,
	}
}

func (m *memDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	p, ok := m.state.posts[id]
	if !ok {
		return nil, nil
	}
	return m.post(p), nil
}

func (m *memDB) GetPostsForCommunity(ctx context.Context, communityId int64, limit int) ([]*model.Post, error) {
	ids, _ := m.GetPostIdsForCommunity(ctx, communityId)
	posts := []*model.Post{}
	for i := len(ids) - 1; i >= 0 && len(posts) < limit; i-- {
		posts = append(posts, m.post(m.state.posts[ids[i]]))
	}
	return posts, nil
}

func (m *memDB) GetPostIdsForCommunity(ctx context.Context, communityId int64) ([]int64, error) {
	ids := []int64{}
	for _, p := range m.state.posts {
		if p.communityId == communityId {
			ids = append(ids, p.id)
		}
	}
	sortIds(ids)
	return ids, nil
}

func (m *memDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	p := m.state.posts[id]
	p.title, p.content, p.media = req.Title, req.Content, append([]string{}, req.Media...)
	m.state.posts[id] = p
	return nil
}

func (m *memDB) DeletePosts(ctx context.Context, ids []int64) error {
	if err := m.failures["DeletePosts"]; err != nil {
		return err
	}
	for _, id := range ids {
		delete(m.state.posts, id)
		delete(m.state.votes, model.VoteTarget{Kind: model.TargetPost, Id: id})
	}
	return nil
}

func (m *memDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	id := m.id()
	m.state.comments[id] = memComment{
		id:          id,
		authorId:    req.AuthorId,
		postId:      req.PostId,
		parentId:    req.ParentId,
		content:     req.Content,
		publishedAt: time.Now().UTC(),
	}
	return id, nil
}

func (m *memDB) comment(c memComment) *model.Comment {
	replies := []int64{}
	for _, other := range m.state.comments {
		if other.parentId != nil && *other.parentId == c.id {
			replies = append(replies, other.id)
		}
	}
	sortIds(replies)
	return &model.Comment{
		Id:          c.id,
		Content:     c.content,
		Author:      m.displayable(c.authorId),
		PostId:      c.postId,
		ParentId:    c.parentId,
		Replies:     replies,
		Votes:       m.voteSets(model.VoteTarget{Kind: model.TargetComment, Id: c.id}),
		PublishedAt: c.publishedAt,
		CreatedAt:   c.publishedAt,
		UpdatedAt:   c.publishedAt,
	}
}

func (m *memDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	c, ok := m.state.comments[id]
	if !ok {
		return nil, nil
	}
	return m.comment(c), nil
}

func (m *memDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	ids, _ := m.GetCommentIdsForPosts(ctx, []int64{postId})
	comments := []*model.Comment{}
	for _, id := range ids {
		comments = append(comments, m.comment(m.state.comments[id]))
	}
	return comments, nil
}

func (m *memDB) GetCommentIdsForPosts(ctx context.Context, postIds []int64) ([]int64, error) {
	wanted := map[int64]bool{}
	for _, id := range postIds {
		wanted[id] = true
	}
	ids := []int64{}
	for _, c := range m.state.comments {
		if wanted[c.postId] {
			ids = append(ids, c.id)
		}
	}
	sortIds(ids)
	return ids, nil
}

func (m *memDB) GetCommentSubtreeIds(ctx context.Context, seedIds []int64) ([]int64, error) {
	seen := map[int64]bool{}
	queue := append([]int64{}, seedIds...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, c := range m.state.comments {
			if c.parentId != nil && *c.parentId == id {
				queue = append(queue, c.id)
			}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sortIds(ids)
	return ids, nil
}

func (m *memDB) UpdateComment(ctx context.Context, id int64, content string) error {
	c := m.state.comments[id]
	c.content = content
	m.state.comments[id] = c
	return nil
}

func (m *memDB) DeleteComments(ctx context.Context, ids []int64) error {
	if err := m.failures["DeleteComments"]; err != nil {
		return err
	}
	for _, id := range ids {
		delete(m.state.comments, id)
		delete(m.state.votes, model.VoteTarget{Kind: model.TargetComment, Id: id})
	}
	return nil
}

func (m *memDB) voteSets(target model.VoteTarget) model.VoteSets {
	sets := model.VoteSets{Upvotes: []string{}, Downvotes: []string{}}
	for voter, value := range m.state.votes[target] {
		if value > 0 {
			sets.Upvotes = append(sets.Upvotes, voter)
		} else {
			sets.Downvotes = append(sets.Downvotes, voter)
		}
	}
	sort.Strings(sets.Upvotes)
	sort.Strings(sets.Downvotes)
	return sets
}

func (m *memDB) GetVoteSets(ctx context.Context, target model.VoteTarget) (model.VoteSets, error) {
	return m.voteSets(target), nil
}

func (m *memDB) ApplyVoteChanges(ctx context.Context, target model.VoteTarget, changes []model.SetChange) error {
	voters, ok := m.state.votes[target]
	if !ok {
		voters = map[string]int8{}
		m.state.votes[target] = voters
	}
	for _, change := range changes {
		value := change.Set.VoteValue()
		switch change.Op {
		case model.Added:
			voters[change.UserId] = value
		case model.Removed:
			if voters[change.UserId] == value {
				delete(voters, change.UserId)
			}
		}
	}
	// failure is injected after the writes so rollback is observable
	return m.failures["ApplyVoteChanges"]
}

func sortIds(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
