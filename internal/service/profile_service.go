package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/devconnect/profile-service/internal/models"
	"github.com/devconnect/profile-service/internal/repository"
)

var (
	ErrNoProfile   = errors.New("no profile for this user")
	ErrBadEntryID  = errors.New("bad entry id")
	ErrBadObjectID = errors.New("invalid object id")
)

// ProfileInput carries the fields the upsert endpoint accepts. Empty
// strings are treated as absent: only supplied fields reach the stored
// document.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExperienceInput and EducationInput carry new list entries.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService handles profile CRUD and the embedded ordered lists.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	log      *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, log: logger}
}

// GetOwn returns the caller's profile joined with name and avatar.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*models.ProfileView, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNoProfile
	}
	p, err := s.profiles.FindByUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return s.withOwner(ctx, p)
}

// Upsert creates or partially updates the caller's profile in one atomic
// operation. Omitted fields on update keep their stored values.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrBadObjectID
	}

	fields := bson.M{"user": id, "status": in.Status, "skills": SplitSkills(in.Skills)}
	if in.Company != "" {
		fields["company"] = in.Company
	}
	if in.Website != "" {
		fields["website"] = in.Website
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.Bio != "" {
		fields["bio"] = in.Bio
	}
	if in.GithubUsername != "" {
		fields["githubusername"] = in.GithubUsername
	}

	social := bson.M{}
	if in.Youtube != "" {
		social["youtube"] = in.Youtube
	}
	if in.Twitter != "" {
		social["twitter"] = in.Twitter
	}
	if in.Facebook != "" {
		social["facebook"] = in.Facebook
	}
	if in.Linkedin != "" {
		social["linkedin"] = in.Linkedin
	}
	if in.Instagram != "" {
		social["instagram"] = in.Instagram
	}
	fields["social"] = social

	return s.profiles.Upsert(ctx, id, fields)
}

// ListAll returns every profile joined with its owner's name and avatar.
func (s *ProfileService) ListAll(ctx context.Context) ([]models.ProfileView, error) {
	profiles, err := s.profiles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.User)
	}
	owners, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, models.ProfileView{Profile: p, User: owners[p.User]})
	}
	return out, nil
}

// GetByUser looks a profile up by its owner's id. A malformed id and a
// well-formed unknown id produce the same error on purpose.
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*models.ProfileView, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrProfileNotFound
	}
	p, err := s.profiles.FindByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, p)
}

// DeleteOwn removes the caller's profile and user record. The deletes are
// sequential and best-effort; a missing profile is not an error.
func (s *ProfileService) DeleteOwn(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrBadObjectID
	}
	if err := s.profiles.DeleteByUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// AddExperience prepends a new entry to the experience list.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNoProfile
	}
	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	p, err := s.profiles.PushExperience(ctx, id, exp)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

// RemoveExperience deletes the entry with entryID from the caller's
// experience list and returns the updated profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNoProfile
	}
	eid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, ErrBadEntryID
	}
	p, err := s.profiles.PullExperience(ctx, uid, eid)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return nil, ErrNoProfile
	case errors.Is(err, repository.ErrEntryNotFound):
		return nil, ErrBadEntryID
	}
	return p, err
}

// AddEducation prepends a new entry to the education list.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNoProfile
	}
	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	p, err := s.profiles.PushEducation(ctx, id, edu)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

// RemoveEducation deletes the entry with entryID from the caller's
// education list and returns the updated profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNoProfile
	}
	eid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, ErrBadEntryID
	}
	p, err := s.profiles.PullEducation(ctx, uid, eid)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return nil, ErrNoProfile
	case errors.Is(err, repository.ErrEntryNotFound):
		return nil, ErrBadEntryID
	}
	return p, err
}

func (s *ProfileService) withOwner(ctx context.Context, p *models.Profile) (*models.ProfileView, error) {
	owners, err := s.users.Summaries(ctx, []primitive.ObjectID{p.User})
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{Profile: *p, User: owners[p.User]}, nil
}

// SplitSkills normalizes the comma-separated skills string into a trimmed
// ordered list.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
