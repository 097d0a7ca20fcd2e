package service

import (
	"context"
	"encoding/json"
	"log"

	"classboard-be/internal/dto"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/lessondoc"
	"classboard-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService prunes media rows no longer referenced by their lesson.
// It runs off the save topic so cleanup trails each persisted edit instead
// of blocking it.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	store      *storage.LocalStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	store *storage.LocalStore,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		store:      store,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishLessonSavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	lesson, err := uow.LessonRepository().FindOne(ctx, specification.ByID{ID: payload.LessonId})
	if err != nil {
		log.Printf("[ERROR] Failed to get lesson %s: %v", payload.LessonId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if lesson == nil {
		log.Printf("[INFO] Lesson %s gone, skipping media pruning", payload.LessonId)
		msg.Ack()
		return
	}

	doc, _ := lessondoc.DecodeJSON(lesson.Text)
	referenced := make(map[uuid.UUID]bool)
	for _, page := range doc.Pages {
		for _, item := range page.Items {
			if item.Media != nil && item.Media.MediaId != nil {
				referenced[*item.Media.MediaId] = true
			}
		}
	}

	rows, err := uow.MediaRepository().FindAll(ctx, specification.ByLessonID{LessonID: lesson.Id})
	if err != nil {
		log.Printf("[ERROR] Failed to list media for lesson %s: %v", lesson.Id, err)
		msg.Nack()
		return
	}

	var orphanPaths []string
	orphans := 0
	for _, row := range rows {
		if referenced[row.Id] {
			continue
		}
		if err := uow.MediaRepository().Delete(ctx, row.Id); err != nil {
			log.Printf("[ERROR] Failed to delete orphan media %s: %v", row.Id, err)
			msg.Nack()
			return
		}
		if row.StoragePath != "" {
			orphanPaths = append(orphanPaths, row.StoragePath)
		}
		orphans++
	}

	// Files go last so a failed row delete never strands a dangling URL.
	for _, path := range orphanPaths {
		if err := cs.store.Remove(path); err != nil {
			log.Printf("[WARN] Failed to remove orphan media file %s: %v", path, err)
		}
	}

	if orphans > 0 {
		log.Printf("[INFO] Pruned %d orphan media rows for lesson %s", orphans, lesson.Id)
	}
	msg.Ack()
}
