// Package policy holds the authorization rules for the editorial pipeline as
// pure functions over (actor, article). A nil actor is an anonymous caller.
// No function here has side effects; the transition table below is the single
// source of truth for which role may move an article between which stages.
package policy

import "student-lens/internal/domain"

// transition is a single edge in the article stage machine.
type transition struct {
	from, to domain.Stage
}

// transitionRoles maps each permitted stage change to the roles allowed to
// perform it. Submission of a new article (no prior stage) is covered by
// CanSubmit instead.
var transitionRoles = map[transition][]domain.Role{
	{domain.StagePending, domain.StageReviewing}:   {domain.RoleEditor, domain.RoleAdmin},
	{domain.StagePending, domain.StageArchived}:    {domain.RoleEditor, domain.RoleAdmin},
	{domain.StageEditing, domain.StageReviewing}:   {domain.RoleEditor, domain.RoleAdmin},
	{domain.StageEditing, domain.StageArchived}:    {domain.RoleEditor, domain.RoleAdmin},
	{domain.StageReviewing, domain.StageEditing}:   {domain.RoleReviewer, domain.RoleAdmin},
	{domain.StageReviewing, domain.StagePublished}: {domain.RoleReviewer, domain.RoleAdmin},
	{domain.StageReviewing, domain.StageArchived}:  {domain.RoleReviewer, domain.RoleAdmin},
}

// ValidTransition reports whether the stage change exists in the transition
// table at all, regardless of actor.
func ValidTransition(from, to domain.Stage) bool {
	_, ok := transitionRoles[transition{from, to}]
	return ok
}

// CanTransition reports whether the actor's role may apply the stage change.
// The caller should check ValidTransition first to distinguish an unknown
// edge from a role restriction.
func CanTransition(actor *domain.User, from, to domain.Stage) bool {
	if actor == nil {
		return false
	}
	roles, ok := transitionRoles[transition{from, to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// CanView reports whether the actor may open the article. Published articles
// are public; otherwise staff and the author may view.
func CanView(actor *domain.User, a *domain.Article) bool {
	if a.Stage == domain.StagePublished {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.IsStaff() || actor.ID == a.AuthorID
}

// CanEdit reports whether the actor may change the article's title, body, or
// categories. Staff edit any article regardless of stage; publishers and
// plain users only their own.
func CanEdit(actor *domain.User, a *domain.Article) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleUser, domain.RolePublisher:
		return actor.ID == a.AuthorID
	default:
		return true
	}
}

// CanSetFinalCategory reports whether the actor may assign the final category
// during an edit.
func CanSetFinalCategory(actor *domain.User) bool {
	if actor == nil {
		return false
	}
	return actor.IsStaff()
}

// CanDelete reports whether the actor may remove the article. Admins and
// reviewers may remove any article; authors only while it has not reached a
// terminal stage.
func CanDelete(actor *domain.User, a *domain.Article) bool {
	if actor == nil {
		return false
	}
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RoleReviewer {
		return true
	}
	if actor.ID != a.AuthorID {
		return false
	}
	switch a.Stage {
	case domain.StagePending, domain.StageEditing, domain.StageReviewing:
		return true
	default:
		return false
	}
}

// CanSubmit reports whether the actor may submit a new article.
func CanSubmit(actor *domain.User) bool {
	if actor == nil {
		return false
	}
	return actor.Role == domain.RolePublisher || actor.Role == domain.RoleAdmin
}

// CanResolveApplication reports whether the actor may accept or reject a
// writer application.
func CanResolveApplication(actor *domain.User) bool {
	return actor != nil && actor.Role == domain.RoleAdmin
}

// CanManageUsers reports whether the actor may list users or change roles.
func CanManageUsers(actor *domain.User) bool {
	return actor != nil && actor.Role == domain.RoleAdmin
}
