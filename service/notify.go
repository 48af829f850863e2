package service

import (
	"context"
	"strconv"

	"github.com/emzola/bookswap/data"
)

// notifyExchangeRequested emails the owner about a new request. Nothing is
// sent when no mailer is configured.
func (s *service) notifyExchangeRequested(requester *data.User, request *data.ExchangeRequest) {
	if s.mailer == nil {
		return
	}
	s.background(func() {
		owner, err := s.repo.GetUserByID(context.Background(), request.OwnerID)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"exchange_request_id": strconv.FormatInt(request.ID, 10)})
			return
		}
		data := map[string]any{
			"Username":      owner.Username,
			"RequesterName": requester.Username,
			"BookName":      request.BookName,
			"RequestID":     request.ID,
		}
		err = s.mailer.Send(owner.Email, "exchange_requested.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"exchange_request_id": strconv.FormatInt(request.ID, 10)})
		}
	})
}

// notifyExchangeResolved emails the requester once the owner has responded.
func (s *service) notifyExchangeResolved(request *data.ExchangeRequest) {
	if s.mailer == nil {
		return
	}
	s.background(func() {
		requester, err := s.repo.GetUserByID(context.Background(), request.RequesterID)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"exchange_request_id": strconv.FormatInt(request.ID, 10)})
			return
		}
		data := map[string]any{
			"Username":  requester.Username,
			"BookName":  request.BookName,
			"RequestID": request.ID,
			"Status":    request.Status,
		}
		err = s.mailer.Send(requester.Email, "exchange_resolved.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"exchange_request_id": strconv.FormatInt(request.ID, 10)})
		}
	})
}
