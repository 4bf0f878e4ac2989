package creative

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/media"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const fallbackNote = "Fallback result due to generation error"

func (o *Orchestrator) fallbackVideo(req VideoRequest) VideoGeneration {
	metrics.DegradedOutcomes.WithLabelValues("video_workflow").Inc()
	return VideoGeneration{
		GenerationID:   "fallback_" + uuid.NewString(),
		Type:           KindVideo,
		Status:         StatusCompleted,
		OriginalPrompt: req.Prompt,
		EnhancedPrompt: fmt.Sprintf("Professional video content for %s: %s", req.TargetAudience, req.Prompt),
		TargetAudience: req.TargetAudience,
		Analysis: AnalysisSummary{
			CulturalScore:   75,
			Insights:        []string{"General audience alignment", "Professional presentation"},
			Recommendations: []string{"Add cultural specificity", "Include authentic elements"},
		},
		Video: &media.VideoResult{
			Status:         StatusCompleted,
			OriginalPrompt: req.Prompt,
			EnhancedPrompt: "Professional video showcasing " + req.Prompt,
			Video:          media.Asset{Resolution: "1920x1080", AspectRatio: "16:9", Duration: "30s", Format: "mp4", Note: fallbackNote},
			Fallback:       true,
		},
		PlatformOptimizations: map[string]*ai.PlatformOptimization{},
		TechnicalSpecs:        VideoSpecs{AspectRatio: "16:9", Duration: "30s", Format: "MP4", Quality: "HD"},
		EstimatedTime:         "2-3 minutes",
		GeneratedAt:           o.now().UTC(),
		Note:                  fallbackNote,
	}
}

func (o *Orchestrator) fallbackImage(req ImageRequest) ImageGeneration {
	metrics.DegradedOutcomes.WithLabelValues("image_workflow").Inc()
	return ImageGeneration{
		GenerationID:   "fallback_" + uuid.NewString(),
		Type:           KindImage,
		Status:         StatusCompleted,
		OriginalPrompt: req.Prompt,
		EnhancedPrompt: fmt.Sprintf("Professional image for %s: %s", req.TargetAudience, req.Prompt),
		TargetAudience: req.TargetAudience,
		Analysis: AnalysisSummary{
			CulturalScore:   75,
			Insights:        []string{"General audience alignment", "Professional presentation"},
			Recommendations: []string{"Add cultural specificity", "Include authentic elements"},
		},
		Image: &media.ImageResult{
			Status:         StatusCompleted,
			OriginalPrompt: req.Prompt,
			EnhancedPrompt: "Professional image showcasing " + req.Prompt,
			Image:          media.Asset{Resolution: "1024x1024", AspectRatio: "1:1", Format: "JPEG", Note: fallbackNote},
			Fallback:       true,
		},
		TechnicalSpecs:  ImageSpecs{AspectRatio: "1:1", Resolution: "1024x1024", Format: "PNG/JPG", Quality: "High"},
		ImagesGenerated: 1,
		GeneratedAt:     o.now().UTC(),
		Note:            fallbackNote,
	}
}

const fallbackCoreConcept = "Professional campaign approach"

func (o *Orchestrator) fallbackCampaign(req CampaignRequest) CampaignStrategy {
	metrics.DegradedOutcomes.WithLabelValues("campaign_workflow").Inc()
	return CampaignStrategy{
		CampaignID:     "fallback_" + uuid.NewString(),
		Type:           KindCampaign,
		Status:         StatusCompleted,
		CampaignName:   titleCase(req.TargetAudience) + " Campaign Strategy",
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		CampaignType:   req.CampaignType,
		Analysis: AnalysisSummary{
			CulturalScore:   70,
			Insights:        []string{"General market understanding", "Standard audience alignment"},
			Recommendations: []string{"Conduct deeper cultural research", "Add authentic elements"},
		},
		Strategy: &ai.CreativeStrategy{
			CoreConcept:              fallbackCoreConcept,
			ExecutionRecommendations: []string{"Focus on quality content", "Maintain brand consistency"},
			Fallback:                 true,
		},
		Variations:             ai.FallbackVariations(fallbackCoreConcept, campaignVariations),
		ContentRecommendations: contentRecommendations(culture.FallbackAnalysis(req.TargetAudience, o.now()), req.CampaignType),
		Timeline:               campaignTimeline(req.BudgetTier),
		Budget:                 budgetBreakdown(req.BudgetTier),
		SuccessMetrics:         successMetrics,
		RiskMitigation:         riskMitigation,
		GeneratedAt:            o.now().UTC(),
		Note:                   "Fallback strategy due to generation error",
	}
}
