// Package options derives the cascading form selects (type → topic →
// action) from a taxonomy snapshot. Everything here is a pure function over
// the snapshot so the cascade behavior is testable without a database.
package options

import (
	"fmt"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
)

type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Snapshot is a point-in-time view of everything the logging form needs.
// Members holds active members only; Topics carry their joined type value.
type Snapshot struct {
	Members []models.Member         `json:"members"`
	Types   []models.ConventionType `json:"types"`
	Topics  []models.Topic          `json:"topics"`
	Actions []models.ActionRule     `json:"actions"`
}

func (s Snapshot) MemberOptions() []SelectOption {
	opts := make([]SelectOption, 0, len(s.Members))
	for _, m := range s.Members {
		opts = append(opts, SelectOption{Value: m.ID.String(), Label: m.Name})
	}
	return opts
}

func (s Snapshot) TypeOptions() []SelectOption {
	opts := make([]SelectOption, 0, len(s.Types))
	for _, t := range s.Types {
		opts = append(opts, SelectOption{Value: t.Value, Label: t.Label})
	}
	return opts
}

// TopicsForType lists topics under a type value. An empty type yields an
// empty list, never "all topics".
func TopicsForType(s Snapshot, typeValue string) []SelectOption {
	if typeValue == "" {
		return []SelectOption{}
	}
	opts := []SelectOption{}
	for _, t := range s.Topics {
		if t.TypeValue == typeValue {
			opts = append(opts, SelectOption{Value: t.ID.String(), Label: t.Title})
		}
	}
	return opts
}

// ActionsForTopic lists action rules under a topic. An empty topic id
// yields an empty list.
func ActionsForTopic(s Snapshot, topicID uuid.UUID) []SelectOption {
	if topicID == uuid.Nil {
		return []SelectOption{}
	}
	opts := []SelectOption{}
	for _, a := range s.Actions {
		if a.TopicID == topicID {
			opts = append(opts, SelectOption{Value: a.ID.String(), Label: a.Label})
		}
	}
	return opts
}

// TopicValidForType reports whether a previously selected topic is still
// valid after the type selection changed. Consumers clear the topic (and
// the action below it) when this is false.
func TopicValidForType(s Snapshot, topicID uuid.UUID, typeValue string) bool {
	for _, t := range s.Topics {
		if t.ID == topicID {
			return t.TypeValue == typeValue
		}
	}
	return false
}

// ActionValidForTopic reports whether a previously selected action is still
// valid after the topic selection changed.
func ActionValidForTopic(s Snapshot, actionID, topicID uuid.UUID) bool {
	for _, a := range s.Actions {
		if a.ID == actionID {
			return a.TopicID == topicID
		}
	}
	return false
}

// ValidateLogRefs re-checks the three-way type/topic/action consistency a
// convention log must satisfy: the topic belongs to the named type and the
// action belongs to the topic. The cascading UI enforces this too, but the
// write path cannot trust it.
func ValidateLogRefs(s Snapshot, typeValue string, topicID, actionID uuid.UUID) error {
	var topic *models.Topic
	for i := range s.Topics {
		if s.Topics[i].ID == topicID {
			topic = &s.Topics[i]
			break
		}
	}
	if topic == nil {
		return fmt.Errorf("%w: topic %s does not exist", models.ErrInvalidReference, topicID)
	}
	if topic.TypeValue != typeValue {
		return fmt.Errorf("%w: topic %q does not belong to type %q", models.ErrInvalidReference, topic.Title, typeValue)
	}

	for _, a := range s.Actions {
		if a.ID == actionID {
			if a.TopicID != topicID {
				return fmt.Errorf("%w: action %q does not belong to topic %q", models.ErrInvalidReference, a.Label, topic.Title)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: action %s does not exist", models.ErrInvalidReference, actionID)
}
