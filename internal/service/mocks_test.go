package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/profile-service/internal/models"
	"github.com/devconnect/profile-service/internal/repository"
)

type memUserRepo struct {
	users   map[primitive.ObjectID]*models.User
	deleted []primitive.ObjectID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Summaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = models.UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type memProfileRepo struct {
	profiles map[primitive.ObjectID]*models.Profile

	// captured arguments for assertion
	lastUpsertFields bson.M
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[primitive.ObjectID]*models.Profile{}}
}

func (r *memProfileRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrProfileNotFound
}

func (r *memProfileRepo) FindAll(_ context.Context) ([]models.Profile, error) {
	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	r.lastUpsertFields = fields

	p, ok := r.profiles[userID]
	if !ok {
		p = &models.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		r.profiles[userID] = p
	}
	for k, v := range fields {
		switch k {
		case "status":
			p.Status = v.(string)
		case "skills":
			p.Skills = v.([]string)
		case "company":
			p.Company = v.(string)
		case "website":
			p.Website = v.(string)
		case "location":
			p.Location = v.(string)
		case "bio":
			p.Bio = v.(string)
		case "githubusername":
			p.GithubUsername = v.(string)
		case "social":
			s := v.(bson.M)
			p.Social = models.Social{
				Youtube:   str(s["youtube"]),
				Twitter:   str(s["twitter"]),
				Facebook:  str(s["facebook"]),
				Linkedin:  str(s["linkedin"]),
				Instagram: str(s["instagram"]),
			}
		}
	}
	cp := *p
	return &cp, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func (r *memProfileRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(r.profiles, userID)
	return nil
}

func (r *memProfileRepo) PushExperience(_ context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) PullExperience(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	for i, e := range p.Experience {
		if e.ID == entryID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (r *memProfileRepo) PushEducation(_ context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	p.Education = append([]models.Education{edu}, p.Education...)
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) PullEducation(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	for i, e := range p.Education {
		if e.ID == entryID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}
